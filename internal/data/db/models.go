package db

type Account struct {
	Address   []byte
	Owner     string
	Balance   int64
	Data      []byte
	Label     string
	CreatedAt int64
	UpdatedAt int64
}

type Transfer struct {
	ID          string
	TxID        string
	FromAddress []byte
	ToAddress   []byte
	Amount      int64
	Kind        string
	CreatedAt   int64
}
