package dto

// AmountRequest is the body for balance add and deduct operations. The
// amount is a decimal string with up to two fraction digits.
type AmountRequest struct {
	Amount string `json:"amount" binding:"required"`
}

// BalanceResponse reports a member's balance
type BalanceResponse struct {
	MemberID uint64 `json:"member_id"`
	Balance  string `json:"balance"`
}

// CheckBalanceRequest is the body for the public pin/password inquiry
type CheckBalanceRequest struct {
	Name     string `json:"name" binding:"required"`
	PIN      string `json:"pin" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// CheckBalanceSignRequest is the body for the public signed inquiry
type CheckBalanceSignRequest struct {
	Name string `json:"name" binding:"required"`
	Sign string `json:"sign"`
}
