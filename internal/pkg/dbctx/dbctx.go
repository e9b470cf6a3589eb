package dbctx

import (
	"context"

	"gorm.io/gorm"
)

// Context carries the request context and an optional transaction into repos.
// A nil Tx means the repo uses its own handle.
type Context struct {
	Ctx context.Context
	Tx  *gorm.DB
}
