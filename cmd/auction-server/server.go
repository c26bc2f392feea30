package main

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/cloudx-io/reverseauction/core"
	"github.com/cloudx-io/reverseauction/engine"
	"github.com/cloudx-io/reverseauction/engineapi"
	"github.com/cloudx-io/reverseauction/receipts"
	"github.com/cloudx-io/reverseauction/token"
)

const readTimeout = 30 * time.Second

// Server accepts one JSON request per connection: the client writes the
// request, half-closes its write side, and reads the single JSON response.
// Concurrency is bounded by a worker pool; a full pool rejects the
// connection rather than queueing it.
type Server struct {
	addr       string
	maxWorkers int
	log        zerolog.Logger
	engine     *engine.Engine
	asset      *token.Service
	issuer     *receipts.Issuer
}

func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	defer func() {
		if err := listener.Close(); err != nil {
			s.log.Error().Err(err).Msg("close listener")
		}
	}()

	s.log.Info().Str("addr", s.addr).Int("max_workers", s.maxWorkers).Msg("auction server listening")

	semaphore := make(chan struct{}, s.maxWorkers)
	for {
		conn, err := listener.Accept()
		if err != nil {
			s.log.Error().Err(err).Msg("accept connection")
			continue
		}

		select {
		case semaphore <- struct{}{}:
			go func(c net.Conn) {
				defer func() { <-semaphore }()
				s.handleConnection(c)
			}(conn)
		default:
			s.log.Info().Msg("worker pool full, rejecting connection")
			if err := conn.Close(); err != nil {
				s.log.Error().Err(err).Msg("close rejected connection")
			}
		}
	}
}

func (s *Server) handleConnection(conn net.Conn) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Any("panic", r).Msg("panic recovered in connection handler")
		}
		if err := conn.Close(); err != nil {
			s.log.Error().Err(err).Msg("close connection")
		}
	}()

	_ = conn.SetReadDeadline(time.Now().Add(readTimeout))

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, conn); err != nil {
		s.log.Error().Err(err).Msg("read request")
		return
	}

	var env engineapi.Envelope
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		s.respond(conn, engineapi.NewError("decode request envelope: %v", err))
		return
	}
	s.log.Debug().Str("type", env.Type).Msg("request received")

	s.respond(conn, s.dispatch(env.Type, buf.Bytes()))
}

func (s *Server) respond(conn net.Conn, response any) {
	if err := json.NewEncoder(conn).Encode(response); err != nil {
		s.log.Error().Err(err).Msg("encode response")
	}
}

// dispatch decodes the full request for its type and runs it against the
// engine. Every branch returns a JSON-encodable response value.
func (s *Server) dispatch(reqType string, raw []byte) any {
	switch reqType {
	case engineapi.TypePing:
		return engineapi.PongResponse{Type: "pong", Message: "auction server is healthy", Timestamp: time.Now().Unix()}

	case engineapi.TypeCreateAuction:
		var req engineapi.CreateAuctionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode create auction request: %v", err)
		}
		params, err := req.Params()
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		a, err := s.engine.CreateAuction(req.Auctioneer, params)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.AuctionResponse{Type: "ok", Auction: a}

	case engineapi.TypeParticipateSelect:
		var req engineapi.ParticipateSelectRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode participate request: %v", err)
		}
		id, err := s.engine.ParticipateSelectAuction(req.Participant, req.Commitment, req.AuctionID)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.TicketResponse{Type: "ok", TicketID: id}

	case engineapi.TypeParticipateRandom:
		var req engineapi.ParticipateRandomRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode participate request: %v", err)
		}
		id, err := s.engine.ParticipateRandomAuction(req.Relayer, req.Commitment, req.AuctionID, req.Participant)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.TicketResponse{Type: "ok", TicketID: id}

	case engineapi.TypeBuyModifier:
		var req engineapi.BuyModifierRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode buy modifier request: %v", err)
		}
		id, err := s.engine.BuyModifier(req.Relayer, req.Recipient, core.ModifierType(req.ModifierType), req.Value)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.ModifierResponse{Type: "ok", ModifierID: id}

	case engineapi.TypeUseModifier:
		var req engineapi.UseModifierRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode use modifier request: %v", err)
		}
		if err := s.engine.UseModifier(req.Caller, req.AuctionID, req.ModifierID, req.TicketID); err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.AckResponse{Type: "ok"}

	case engineapi.TypeReveal:
		var req engineapi.RevealRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode reveal request: %v", err)
		}
		n, err := s.engine.RevealAuction(req.Caller, req.AuctionID, req.TicketID, req.Number, req.Passphrase)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.RevealResponse{Type: "ok", NumberFinal: n}

	case engineapi.TypeClaimPrize:
		var req engineapi.ClaimPrizeRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode claim prize request: %v", err)
		}
		paid, err := s.engine.ClaimAuctionPrize(req.Caller, req.AuctionID, req.TicketID)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		resp := engineapi.ClaimResponse{Type: "ok", Amount: paid.String()}
		if paid.IsPositive() {
			receipt, err := s.issueReceipt(req.AuctionID)
			if err != nil {
				s.log.Error().Err(err).Int64("auction_id", req.AuctionID).Msg("issue settlement receipt")
			} else {
				resp.Receipt = receipt
			}
		}
		return resp

	case engineapi.TypeClaimProfits:
		var req engineapi.ClaimProfitsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode claim profits request: %v", err)
		}
		paid, err := s.engine.ClaimAuctionProfits(req.Caller, req.AuctionID)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.ClaimResponse{Type: "ok", Amount: paid.String()}

	case engineapi.TypeSetFeePercent:
		var req engineapi.SetFeePercentRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode set fee percent request: %v", err)
		}
		if err := s.engine.SetFeePercent(req.Caller, req.Percent); err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.AckResponse{Type: "ok"}

	case engineapi.TypeClaimFees:
		var req engineapi.ClaimFeesRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode claim fees request: %v", err)
		}
		paid, err := s.engine.ClaimFees(req.Caller)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.ClaimResponse{Type: "ok", Amount: paid.String()}

	case engineapi.TypeGetAuction:
		var req engineapi.GetAuctionRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode get auction request: %v", err)
		}
		a, err := s.engine.GetAuction(req.AuctionID)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.AuctionResponse{Type: "ok", Auction: a}

	case engineapi.TypeAuctionsPage:
		var req engineapi.PageRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode page request: %v", err)
		}
		ids, total, err := s.engine.AuctionsPage(req.Page, req.Size)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.PageResponse{Type: "ok", IDs: ids, Total: total}

	case engineapi.TypeMyAuctionsPage:
		var req engineapi.PageRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode page request: %v", err)
		}
		ids, total, err := s.engine.MyAuctionsPage(req.Account, req.Page, req.Size)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.PageResponse{Type: "ok", IDs: ids, Total: total}

	case engineapi.TypeMyBids:
		var req engineapi.MyBidsRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode my bids request: %v", err)
		}
		ids, err := s.engine.MyBidsInAuction(req.Account, req.AuctionID)
		if err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.PageResponse{Type: "ok", IDs: ids, Total: len(ids)}

	case engineapi.TypeUpdateNewAuctions:
		return engineapi.SweepResponse{Type: "ok", Removed: s.engine.UpdateNewAuctions()}

	case engineapi.TypeEvents:
		return engineapi.EventsResponse{Type: "ok", Events: s.engine.Events()}

	case engineapi.TypeMint:
		var req engineapi.MintRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode mint request: %v", err)
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return engineapi.NewError("parse amount: %v", err)
		}
		if err := s.asset.Mint(req.Caller, req.Account, amount); err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.AckResponse{Type: "ok"}

	case engineapi.TypeApprove:
		var req engineapi.ApproveRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode approve request: %v", err)
		}
		amount, err := decimal.NewFromString(req.Amount)
		if err != nil {
			return engineapi.NewError("parse amount: %v", err)
		}
		if err := s.asset.Approve(req.Owner, req.Spender, amount); err != nil {
			return engineapi.NewError("%v", err)
		}
		return engineapi.AckResponse{Type: "ok"}

	case engineapi.TypeBalance:
		var req engineapi.BalanceRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return engineapi.NewError("decode balance request: %v", err)
		}
		return engineapi.BalanceResponse{Type: "ok", Account: req.Account, Balance: s.asset.BalanceOf(req.Account).String()}

	default:
		return engineapi.NewError("unknown request type: %s", reqType)
	}
}

// issueReceipt signs a settlement for the auction's final outcome.
func (s *Server) issueReceipt(auctionID int64) (string, error) {
	a, err := s.engine.GetAuction(auctionID)
	if err != nil {
		return "", err
	}
	raw, err := s.issuer.Issue(receipts.Settlement{
		AuctionID:  a.ID,
		Auctioneer: a.Auctioneer,
		Winner:     a.Winner,
		LowestBid:  a.LowestBid,
		Prize:      a.Prize.String(),
		SettledAt:  time.Now().Unix(),
	})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
