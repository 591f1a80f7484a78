package logging

import "context"

type contextKey string

const (
	txIDKey   contextKey = "tx_id"
	listKey   contextKey = "list"
	itemKey   contextKey = "item"
	callerKey contextKey = "caller"
)

// WithTxID adds a transaction ID to the context.
func WithTxID(ctx context.Context, txID string) context.Context {
	return context.WithValue(ctx, txIDKey, txID)
}

// WithList adds a list address to the context.
func WithList(ctx context.Context, list string) context.Context {
	return context.WithValue(ctx, listKey, list)
}

// WithItem adds an item address to the context.
func WithItem(ctx context.Context, item string) context.Context {
	return context.WithValue(ctx, itemKey, item)
}

// WithCaller adds the signing wallet to the context.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey, caller)
}

// GetTxID retrieves the transaction ID from the context.
// Returns empty string if not present.
func GetTxID(ctx context.Context) string {
	return stringValue(ctx, txIDKey)
}

// GetList retrieves the list address from the context.
func GetList(ctx context.Context) string {
	return stringValue(ctx, listKey)
}

// GetItem retrieves the item address from the context.
func GetItem(ctx context.Context) string {
	return stringValue(ctx, itemKey)
}

// GetCaller retrieves the caller address from the context.
func GetCaller(ctx context.Context) string {
	return stringValue(ctx, callerKey)
}

func stringValue(ctx context.Context, key contextKey) string {
	if v, ok := ctx.Value(key).(string); ok {
		return v
	}
	return ""
}
