// Package swipe holds the wire messages and hand-written service descriptor
// of muzz.swipe.SwipeService.
package swipe

type SwipeRequest struct {
	ActorUserId     string `json:"actor_user_id" validate:"required,numeric"`
	RecipientUserId string `json:"recipient_user_id" validate:"required,numeric"`
	// Direction is LIKE or PASS.
	Direction string `json:"direction" validate:"required"`
	SuperLike bool   `json:"super_like,omitempty"`
}

func (x *SwipeRequest) GetActorUserId() string {
	if x != nil {
		return x.ActorUserId
	}
	return ""
}

func (x *SwipeRequest) GetRecipientUserId() string {
	if x != nil {
		return x.RecipientUserId
	}
	return ""
}

func (x *SwipeRequest) GetDirection() string {
	if x != nil {
		return x.Direction
	}
	return ""
}

type SwipeResponse struct {
	DecisionRecorded bool `json:"decision_recorded"`
	Matched          bool `json:"matched"`
}

type IsMatchedRequest struct {
	UserId      string `json:"user_id" validate:"required,numeric"`
	OtherUserId string `json:"other_user_id" validate:"required,numeric"`
}

type IsMatchedResponse struct {
	Matched bool `json:"matched"`
}

type ListMatchesRequest struct {
	UserId          string `json:"user_id" validate:"required,numeric"`
	PaginationToken string `json:"pagination_token,omitempty"`
	Limit           int32  `json:"limit,omitempty" validate:"gte=0"`
}

func (x *ListMatchesRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

type ListMatchesResponse_Match struct {
	PeerUserId    string `json:"peer_user_id"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

type ListMatchesResponse struct {
	Matches             []*ListMatchesResponse_Match `json:"matches"`
	NextPaginationToken string                       `json:"next_pagination_token,omitempty"`
}

type CountMatchesRequest struct {
	UserId string `json:"user_id" validate:"required,numeric"`
}

type CountMatchesResponse struct {
	Count uint64 `json:"count"`
}

type ListAdmirersRequest struct {
	UserId          string `json:"user_id" validate:"required,numeric"`
	PaginationToken string `json:"pagination_token,omitempty"`
	Limit           int32  `json:"limit,omitempty" validate:"gte=0"`
}

func (x *ListAdmirersRequest) GetUserId() string {
	if x != nil {
		return x.UserId
	}
	return ""
}

type ListAdmirersResponse_Admirer struct {
	ActorId       string `json:"actor_id"`
	SuperLike     bool   `json:"super_like,omitempty"`
	UnixTimestamp uint64 `json:"unix_timestamp"`
}

type ListAdmirersResponse struct {
	Admirers            []*ListAdmirersResponse_Admirer `json:"admirers"`
	NextPaginationToken string                          `json:"next_pagination_token,omitempty"`
}
