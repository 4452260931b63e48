package http

import "time"

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type SubmitApplicationRequest struct {
	Applicant      string   `json:"applicant,omitempty"`
	Candidate      string   `json:"candidate"`
	TypeTag        string   `json:"type_tag"`
	Title          string   `json:"title"`
	DisplayTitle   string   `json:"display_title"`
	MetadataURI    string   `json:"metadata_uri"`
	CapabilityTags []string `json:"capability_tags,omitempty"`
	FeeOffered     uint64   `json:"fee_offered"`
}

type SubmitApplicationResponse struct {
	ApplicationID string    `json:"application_id"`
	Kind          string    `json:"kind"`
	Candidate     string    `json:"candidate"`
	Phase         string    `json:"phase"`
	RoundIndex    int       `json:"round_index"`
	PhaseDeadline time.Time `json:"phase_deadline"`
	FeeCharged    uint64    `json:"fee_charged"`
	Replayed      bool      `json:"replayed"`
}

type PlaceDepositRequest struct {
	Participant string `json:"participant,omitempty"`
	Side        string `json:"side"`
	Amount      uint64 `json:"amount"`
}

type DepositResponse struct {
	ApplicationID string `json:"application_id"`
	RoundIndex    int    `json:"round_index"`
	Side          string `json:"side"`
	Placed        uint64 `json:"placed"`
	Total         uint64 `json:"total"`
	SupportTotal  uint64 `json:"support_total"`
	OpposeTotal   uint64 `json:"oppose_total"`
	Replayed      bool   `json:"replayed"`
}

type FinalizeRoundRequest struct {
	Caller string `json:"caller,omitempty"`
}

type FinalizeRoundResponse struct {
	ApplicationID string     `json:"application_id"`
	RoundIndex    int        `json:"round_index"`
	SupportTotal  uint64     `json:"support_total"`
	OpposeTotal   uint64     `json:"oppose_total"`
	SupportWon    bool       `json:"support_won"`
	Phase         string     `json:"phase"`
	PhaseDeadline *time.Time `json:"phase_deadline,omitempty"`
}

type ChallengeRequest struct {
	Challenger string `json:"challenger,omitempty"`
	Stake      uint64 `json:"stake"`
}

type ChallengeResponse struct {
	ApplicationID string    `json:"application_id"`
	RoundIndex    int       `json:"round_index"`
	Stake         uint64    `json:"stake"`
	Phase         string    `json:"phase"`
	PhaseDeadline time.Time `json:"phase_deadline"`
	Replayed      bool      `json:"replayed"`
}

type AdvanceRequest struct {
	Caller string `json:"caller,omitempty"`
}

type LameDuckResponse struct {
	ApplicationID string    `json:"application_id"`
	Phase         string    `json:"phase"`
	PhaseDeadline time.Time `json:"phase_deadline"`
}

type RegisterResponse struct {
	ApplicationID string    `json:"application_id"`
	Phase         string    `json:"phase"`
	RegisteredAt  time.Time `json:"registered_at"`
}

type WithdrawRequest struct {
	Participant string `json:"participant,omitempty"`
}

type WithdrawResponse struct {
	ApplicationID string `json:"application_id"`
	Amount        uint64 `json:"amount"`
	DepositCount  int    `json:"deposit_count"`
	Replayed      bool   `json:"replayed"`
}

type RoundItem struct {
	RoundIndex      int       `json:"round_index"`
	SupportTotal    uint64    `json:"support_total"`
	OpposeTotal     uint64    `json:"oppose_total"`
	StartedAt       time.Time `json:"started_at"`
	EndsAt          time.Time `json:"ends_at"`
	Challenger      string    `json:"challenger,omitempty"`
	ChallengerStake uint64    `json:"challenger_stake,omitempty"`
	Resolved        bool      `json:"resolved"`
	SupportWon      bool      `json:"support_won"`
}

type ApplicationStatusResponse struct {
	ApplicationID             string     `json:"application_id"`
	Kind                      string     `json:"kind"`
	Candidate                 string     `json:"candidate"`
	Applicant                 string     `json:"applicant"`
	TypeTag                   string     `json:"type_tag"`
	Title                     string     `json:"title"`
	DisplayTitle              string     `json:"display_title"`
	MetadataURI               string     `json:"metadata_uri"`
	CapabilityTags            []string   `json:"capability_tags"`
	Phase                     string     `json:"phase"`
	PhaseDeadline             *time.Time `json:"phase_deadline,omitempty"`
	CumulativeSupportRequired uint64     `json:"cumulative_support_required"`
	RoundCount                int        `json:"round_count"`
	SubmissionFeePaid         uint64     `json:"submission_fee_paid"`
	CreatedAt                 time.Time  `json:"created_at"`
	ResolvedAt                *time.Time `json:"resolved_at,omitempty"`
	CurrentRound              RoundItem  `json:"current_round"`
}

type DepositStatusResponse struct {
	ApplicationID string `json:"application_id"`
	Participant   string `json:"participant"`
	RoundIndex    int    `json:"round_index"`
	Side          string `json:"side"`
	Amount        uint64 `json:"amount"`
	Withdrawn     bool   `json:"withdrawn"`
}

type DepositItem struct {
	RoundIndex int    `json:"round_index"`
	Side       string `json:"side"`
	Amount     uint64 `json:"amount"`
	Withdrawn  bool   `json:"withdrawn"`
}

type WithdrawableResponse struct {
	ApplicationID string        `json:"application_id"`
	Participant   string        `json:"participant"`
	Total         uint64        `json:"total"`
	Withdrawable  bool          `json:"withdrawable"`
	Deposits      []DepositItem `json:"deposits"`
}

type AnnotationItem struct {
	Seq        uint64    `json:"seq"`
	RoundIndex int       `json:"round_index"`
	Action     string    `json:"action"`
	Actor      string    `json:"actor,omitempty"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type AnnotationsResponse struct {
	Items []AnnotationItem `json:"items"`
}

type UpdateAddressRequest struct {
	Address string `json:"address"`
}

type SettingsResponse struct {
	Kind            string `json:"kind"`
	AssetAddress    string `json:"asset_address"`
	RegistryAddress string `json:"registry_address"`
}
