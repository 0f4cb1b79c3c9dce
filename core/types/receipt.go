package types

import "math/big"

// Receipt is the JSON document emitted for a processed transaction.
type Receipt struct {
	Status string `json:"status"` // "0" or "1"

	From            Address  `json:"from"`
	To              *Address `json:"to"`
	Value           *big.Int `json:"value"`
	Nonce           uint64   `json:"nonce"`
	V               *big.Int `json:"v"`
	R               *big.Int `json:"r"`
	S               *big.Int `json:"s"`
	CreatedAddress  *Address `json:"createdAddress"`

	CumulativeGasUsed *big.Int `json:"cumulativeGasUsed"`
	GasUsed           *big.Int `json:"gasUsed"`
	GasLimit          *big.Int `json:"gasLimit"`
	GasPrice          *big.Int `json:"gasPrice"`

	Logs   []LogEntry `json:"logs"`
	Output []byte     `json:"output"`
	Errors []string   `json:"errors"`

	TransactionHash  Hash `json:"transactionHash"`
	TransactionIndex int  `json:"transactionIndex"`
}
