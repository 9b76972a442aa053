package handlers

// CreateUserRequest is the payload for registering a user.
type CreateUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// CreateGroupRequest is the payload for creating a group.
type CreateGroupRequest struct {
	Name      string   `json:"name" binding:"required"`
	MemberIDs []string `json:"member_ids"`
}

// AddMembersRequest is the payload for adding members to a group.
type AddMembersRequest struct {
	MemberIDs []string `json:"member_ids" binding:"required,min=1"`
}

// CreateExpenseRequest is the payload for recording a shared expense.
// SplitType defaults to EQUAL; Percentages is only read for PERCENTAGE.
type CreateExpenseRequest struct {
	Description string             `json:"description" binding:"required"`
	Amount      float64            `json:"amount" binding:"required,gt=0"`
	PayerID     string             `json:"payer_id" binding:"required"`
	SplitType   string             `json:"split_type"`
	Percentages map[string]float64 `json:"percentages"`
}

// CreateSettlementRequest is the payload for recording a cash payment.
type CreateSettlementRequest struct {
	PayerID     string  `json:"payer_id" binding:"required"`
	RecipientID string  `json:"recipient_id" binding:"required"`
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Note        string  `json:"note"`
}
