package rest

const (
	resultAccepted = "accepted"
	resultDenied   = "denied"
)

type registerUserRequest struct {
	UserName string `json:"userName"`
}

type registerUserResponse struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type createGameResponse struct {
	GameID string `json:"gameId"`
}

type joinGameRequest struct {
	UserID string `json:"userId"`
	GameID string `json:"gameId"`
	Symbol string `json:"symbol"`
}

type makeMoveRequest struct {
	UserID string `json:"userId"`
	GameID string `json:"gameId"`
	Symbol string `json:"symbol"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// actionResponse is the binary accepted/denied outcome every join and
// move resolves to; Reason carries the denial code.
type actionResponse struct {
	Result string `json:"result"`
	Reason string `json:"reason,omitempty"`
}
