// Package engineapi defines the JSON wire types of the auction server.
// Every request carries a "type" discriminator; the server decodes the
// envelope first, then the full request for that type. Asset amounts travel
// as decimal strings.
package engineapi

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/cloudx-io/reverseauction/core"
	"github.com/cloudx-io/reverseauction/engine"
)

// Request type discriminators.
const (
	TypePing              = "ping"
	TypeCreateAuction     = "create_auction"
	TypeParticipateSelect = "participate_select"
	TypeParticipateRandom = "participate_random"
	TypeBuyModifier       = "buy_modifier"
	TypeUseModifier       = "use_modifier"
	TypeReveal            = "reveal"
	TypeClaimPrize        = "claim_prize"
	TypeClaimProfits      = "claim_profits"
	TypeSetFeePercent     = "set_fee_percent"
	TypeClaimFees         = "claim_fees"
	TypeGetAuction        = "get_auction"
	TypeAuctionsPage      = "auctions_page"
	TypeMyAuctionsPage    = "my_auctions_page"
	TypeMyBids            = "my_bids"
	TypeUpdateNewAuctions = "update_new_auctions"
	TypeEvents            = "events"
	TypeMint              = "mint"
	TypeApprove           = "approve"
	TypeBalance           = "balance_of"
)

// Envelope is the first-pass decode target for every request.
type Envelope struct {
	Type string `json:"type"`
}

type CreateAuctionRequest struct {
	Type             string `json:"type"`
	Auctioneer       string `json:"auctioneer"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	Prize            string `json:"prize"`
	EntryPrice       string `json:"entry_price"`
	StartTime        int64  `json:"start_time"`
	EndTimeCommit    int64  `json:"end_time_commit"`
	EndTimeModifiers int64  `json:"end_time_modifiers"`
	EndTimeReveal    int64  `json:"end_time_reveal"`
	AuctionType      string `json:"auction_type"`
}

// Params converts the wire request into engine parameters, parsing the
// decimal amounts.
func (r CreateAuctionRequest) Params() (engine.CreateAuctionParams, error) {
	prize, err := decimal.NewFromString(r.Prize)
	if err != nil {
		return engine.CreateAuctionParams{}, fmt.Errorf("parse prize: %w", err)
	}
	entry, err := decimal.NewFromString(r.EntryPrice)
	if err != nil {
		return engine.CreateAuctionParams{}, fmt.Errorf("parse entry price: %w", err)
	}
	return engine.CreateAuctionParams{
		Title:       r.Title,
		Description: r.Description,
		Prize:       prize,
		EntryPrice:  entry,
		Times: core.AuctionTimes{
			Start:        r.StartTime,
			EndCommit:    r.EndTimeCommit,
			EndModifiers: r.EndTimeModifiers,
			EndReveal:    r.EndTimeReveal,
		},
		Type: core.AuctionType(r.AuctionType),
	}, nil
}

type ParticipateSelectRequest struct {
	Type        string `json:"type"`
	Participant string `json:"participant"`
	Commitment  string `json:"commitment"`
	AuctionID   int64  `json:"auction_id"`
}

type ParticipateRandomRequest struct {
	Type        string `json:"type"`
	Relayer     string `json:"relayer"`
	Commitment  string `json:"commitment"`
	AuctionID   int64  `json:"auction_id"`
	Participant string `json:"participant"`
}

type BuyModifierRequest struct {
	Type         string `json:"type"`
	Relayer      string `json:"relayer"`
	Recipient    string `json:"recipient"`
	ModifierType int    `json:"modifier_type"`
	Value        int64  `json:"value"`
}

type UseModifierRequest struct {
	Type       string `json:"type"`
	Caller     string `json:"caller"`
	AuctionID  int64  `json:"auction_id"`
	ModifierID int64  `json:"modifier_id"`
	TicketID   int64  `json:"ticket_id"`
}

type RevealRequest struct {
	Type       string `json:"type"`
	Caller     string `json:"caller"`
	AuctionID  int64  `json:"auction_id"`
	TicketID   int64  `json:"ticket_id"`
	Number     int64  `json:"number"`
	Passphrase string `json:"passphrase"`
}

type ClaimPrizeRequest struct {
	Type      string `json:"type"`
	Caller    string `json:"caller"`
	AuctionID int64  `json:"auction_id"`
	TicketID  int64  `json:"ticket_id"`
}

type ClaimProfitsRequest struct {
	Type      string `json:"type"`
	Caller    string `json:"caller"`
	AuctionID int64  `json:"auction_id"`
}

type SetFeePercentRequest struct {
	Type    string `json:"type"`
	Caller  string `json:"caller"`
	Percent int64  `json:"percent"`
}

type ClaimFeesRequest struct {
	Type   string `json:"type"`
	Caller string `json:"caller"`
}

type GetAuctionRequest struct {
	Type      string `json:"type"`
	AuctionID int64  `json:"auction_id"`
}

type PageRequest struct {
	Type    string `json:"type"`
	Account string `json:"account,omitempty"`
	Page    int    `json:"page"`
	Size    int    `json:"size"`
}

type MyBidsRequest struct {
	Type      string `json:"type"`
	Account   string `json:"account"`
	AuctionID int64  `json:"auction_id"`
}

type MintRequest struct {
	Type    string `json:"type"`
	Caller  string `json:"caller"`
	Account string `json:"account"`
	Amount  string `json:"amount"`
}

type ApproveRequest struct {
	Type    string `json:"type"`
	Owner   string `json:"owner"`
	Spender string `json:"spender"`
	Amount  string `json:"amount"`
}

type BalanceRequest struct {
	Type    string `json:"type"`
	Account string `json:"account"`
}

// Responses. Every response carries "type": "ok" or "error".

type ErrorResponse struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewError(format string, args ...any) ErrorResponse {
	return ErrorResponse{Type: "error", Message: fmt.Sprintf(format, args...)}
}

type PongResponse struct {
	Type      string `json:"type"`
	Message   string `json:"message"`
	Timestamp int64  `json:"timestamp"`
}

type AuctionResponse struct {
	Type    string         `json:"type"`
	Auction engine.Auction `json:"auction"`
}

type TicketResponse struct {
	Type     string `json:"type"`
	TicketID int64  `json:"ticket_id"`
}

type ModifierResponse struct {
	Type       string `json:"type"`
	ModifierID int64  `json:"modifier_id"`
}

type RevealResponse struct {
	Type        string `json:"type"`
	NumberFinal int64  `json:"number_final"`
}

// ClaimResponse reports an asset movement. For prize claims, Receipt carries
// the base64-encoded COSE_Sign1 settlement envelope.
type ClaimResponse struct {
	Type    string `json:"type"`
	Amount  string `json:"amount"`
	Receipt string `json:"receipt,omitempty"`
}

type AckResponse struct {
	Type string `json:"type"`
}

type PageResponse struct {
	Type  string  `json:"type"`
	IDs   []int64 `json:"ids"`
	Total int     `json:"total"`
}

type SweepResponse struct {
	Type    string `json:"type"`
	Removed int    `json:"removed"`
}

type EventsResponse struct {
	Type   string         `json:"type"`
	Events []engine.Event `json:"events"`
}

type BalanceResponse struct {
	Type    string `json:"type"`
	Account string `json:"account"`
	Balance string `json:"balance"`
}
