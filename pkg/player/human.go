package player

import (
	"context"

	"github.com/klaverjas-engine/pkg/cards"
	"github.com/klaverjas-engine/pkg/game"
)

// RequestKind zegt of een mens moet bieden of een kaart spelen.
type RequestKind int

const (
	RequestBid RequestKind = iota
	RequestMove
)

// Request is een vraag aan de mens achter een stoel. De UI beantwoordt hem
// precies één keer met Reply.
type Request struct {
	Kind RequestKind
	Seat int

	// RequestBid
	Bid game.BidRequest

	// RequestMove; State is een kopie, de UI mag er niet mee spelen.
	State *game.GameState
	Legal []cards.Card

	reply chan Response
}

// Response is het antwoord op een Request.
type Response struct {
	Bid  game.Bid
	Card cards.Card
	Err  error
}

// Reply stuurt het antwoord terug; blokkeert nooit.
func (r Request) Reply(resp Response) {
	select {
	case r.reply <- resp:
	default:
	}
}

// Human speelt via een kanaal, zodat een terminal of andere UI in een eigen
// goroutine de beslissingen kan nemen.
type Human struct {
	requests chan Request
}

func NewHuman() *Human {
	return &Human{requests: make(chan Request)}
}

// Requests levert de openstaande vragen.
func (h *Human) Requests() <-chan Request { return h.requests }

func (h *Human) SelectBid(ctx context.Context, req game.BidRequest) (game.Bid, error) {
	resp, err := h.ask(ctx, Request{Kind: RequestBid, Seat: req.Seat, Bid: req})
	return resp.Bid, err
}

func (h *Human) SelectMove(ctx context.Context, seat int, gs *game.GameState, legal []cards.Card) (cards.Card, error) {
	resp, err := h.ask(ctx, Request{
		Kind:  RequestMove,
		Seat:  seat,
		State: gs.Clone(),
		Legal: append([]cards.Card(nil), legal...),
	})
	return resp.Card, err
}

func (h *Human) ask(ctx context.Context, req Request) (Response, error) {
	req.reply = make(chan Response, 1)
	select {
	case h.requests <- req:
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
	select {
	case resp := <-req.reply:
		return resp, resp.Err
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}
