package data

import "context"

// TransactionManager runs f inside one transaction carried by ctx.
// Repositories read the session back through Get.
type TransactionManager interface {
	Do(ctx context.Context, f func(ctx context.Context) error) error
	Get(ctx context.Context) any
}
