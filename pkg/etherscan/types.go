package etherscan

// TxListResp is the account txlist response envelope. Status is "0" both for
// errors and for the "No transactions found" case.
type TxListResp struct {
	Status  string     `json:"status"`
	Message string     `json:"message"`
	Result  []TxRecord `json:"result"`
}

// TxRecord 单条链上交易，数值字段均为十进制字符串
type TxRecord struct {
	BlockNumber string `json:"blockNumber"`
	TimeStamp   string `json:"timeStamp"` // epoch seconds
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"` // wei
	IsError     string `json:"isError"`
}
