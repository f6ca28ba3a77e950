package io

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/klaverjas-engine/pkg/cards"
	"github.com/klaverjas-engine/pkg/game"
)

// ErrNotAnOption is returned when the input names a card or bid that is not
// on offer.
var ErrNotAnOption = errors.New("geen geldige keuze")

// Reader leest interactieve invoer.
type Reader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewReader leest van in en schrijft prompts naar out.
func NewReader(in io.Reader, out io.Writer) *Reader {
	return &Reader{scanner: bufio.NewScanner(in), out: out}
}

// Stdin is de Reader van de terminal.
func Stdin() *Reader {
	return NewReader(os.Stdin, os.Stdout)
}

// ReadLine geeft io.EOF als de invoer op is.
func (r *Reader) ReadLine(prompt string) (string, error) {
	fmt.Fprint(r.out, prompt)
	if r.scanner.Scan() {
		return strings.TrimSpace(r.scanner.Text()), nil
	}
	if err := r.scanner.Err(); err != nil {
		return "", errors.Wrap(err, "invoer lezen")
	}
	return "", io.EOF
}

func (r *Reader) ReadInt(prompt string) (int, error) {
	s, err := r.ReadLine(prompt)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(s)
	return n, errors.Wrapf(err, "geen getal: %q", s)
}

func (r *Reader) ReadYesNo(prompt string) (bool, error) {
	s, err := r.ReadLine(prompt + " (j/n): ")
	if err != nil {
		return false, err
	}
	s = strings.ToLower(s)
	return s == "j" || s == "y" || s == "ja" || s == "yes", nil
}

// ParseChoice zet invoer om in een van de legale kaarten: de notatie
// ("hJ") of het volgnummer in legal, vanaf 1.
func ParseChoice(s string, legal []cards.Card) (cards.Card, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > len(legal) {
			return cards.Card{}, errors.Wrapf(ErrNotAnOption, "nummer %d", n)
		}
		return legal[n-1], nil
	}
	c, err := cards.ParseCard(s)
	if err != nil {
		return cards.Card{}, err
	}
	for _, l := range legal {
		if l == c {
			return c, nil
		}
	}
	return cards.Card{}, errors.Wrapf(ErrNotAnOption, "%s mag niet", c)
}

// ParseBid zet invoer om in een van de opties: "p"/"pas" of een kleur.
func ParseBid(s string, options []game.Bid) (game.Bid, error) {
	var bid game.Bid
	switch strings.ToLower(s) {
	case "p", "pas", "pass":
		bid = game.PassBid
	default:
		suit, err := cards.ParseSuit(s)
		if err != nil {
			return game.Bid{}, err
		}
		bid = game.SuitBid(suit)
	}
	for _, o := range options {
		if o == bid {
			return bid, nil
		}
	}
	return game.Bid{}, errors.Wrapf(ErrNotAnOption, "bod %s", bid)
}

// ReadCard vraagt tot er een legale kaart is ingevoerd.
func (r *Reader) ReadCard(prompt string, legal []cards.Card) (cards.Card, error) {
	for {
		s, err := r.ReadLine(prompt)
		if err != nil {
			return cards.Card{}, err
		}
		c, err := ParseChoice(s, legal)
		if err == nil {
			return c, nil
		}
		fmt.Fprintf(r.out, "Fout: %v\n", err)
	}
}

// ReadBid vraagt tot er een geldig bod is ingevoerd.
func (r *Reader) ReadBid(prompt string, options []game.Bid) (game.Bid, error) {
	for {
		s, err := r.ReadLine(prompt)
		if err != nil {
			return game.Bid{}, err
		}
		b, err := ParseBid(s, options)
		if err == nil {
			return b, nil
		}
		fmt.Fprintf(r.out, "Fout: %v\n", err)
	}
}

// ---- Display-functies ----

func PrintHeader(w io.Writer, title string) {
	border := strings.Repeat("═", len([]rune(title))+4)
	fmt.Fprintf(w, "\n╔%s╗\n║  %s  ║\n╚%s╝\n\n", border, title, border)
}

func PrintSubHeader(w io.Writer, title string) {
	fmt.Fprintf(w, "\n─── %s ───\n", title)
}

// FormatHand sorteert per kleur, troef eerst, sterkste kaart voorop.
func FormatHand(hand []cards.Card, trump cards.Suit) string {
	set := cards.NewCardSet(hand)
	order := []cards.Suit{trump}
	for _, s := range cards.Suits() {
		if s != trump {
			order = append(order, s)
		}
	}
	set.SortAll(cards.NewSortingMap(trump), order)
	return set.String()
}

// FormatPlainHand sorteert zonder troef, voor tijdens het bieden.
func FormatPlainHand(hand []cards.Card) string {
	set := cards.NewCardSet(hand)
	set.SortAll(cards.UniformSortingMap(cards.PlainOrder), cards.Suits())
	return set.String()
}

// FormatOptions nummert de kaarten voor ParseChoice.
func FormatOptions(legal []cards.Card) string {
	parts := make([]string, len(legal))
	for i, c := range legal {
		parts[i] = fmt.Sprintf("%d:%s", i+1, c.Notation())
	}
	return strings.Join(parts, "  ")
}

func FormatBids(options []game.Bid) string {
	parts := make([]string, len(options))
	for i, b := range options {
		if b.Pass {
			parts[i] = "p=pas"
		} else {
			parts[i] = fmt.Sprintf("%s=%s", b.Suit.Letter(), b.Suit)
		}
	}
	return strings.Join(parts, "  ")
}

// FormatTrick toont een volle slag met winnaar en punten.
func FormatTrick(t *game.Trick) string {
	s := t.Score()
	line := fmt.Sprintf("%s  → speler %d (%d", t, t.Winner()+1, s.Points)
	if s.Bonus > 0 {
		line += fmt.Sprintf(", roem %d", s.Bonus)
	}
	return line + ")"
}

func FormatScores(scores [2]game.RoundScore) string {
	return fmt.Sprintf("Wij (1+3): %s | Zij (2+4): %s", scores[0], scores[1])
}

func FormatTotals(totals [2]int) string {
	return fmt.Sprintf("Totaal wij: %d | zij: %d", totals[0], totals[1])
}

func FormatScore(score float64) string {
	return fmt.Sprintf("%.1f%%", score*100)
}

func PrintHelp(w io.Writer) {
	fmt.Fprint(w, `
Kaartnotatie: <kleur><rang>
  kleur: c/k=klaveren  d/r=ruiten  h=harten  s=schoppen
  rang:  7 8 9 10 J/B Q/V K/H A
  Je mag ook het nummer uit de lijst met opties typen.

Bieden: kleurletter, of p om te passen.

Commando's tijdens jouw beurt:
  hint       laat motorsuggestie zien
  hand       laat jouw hand opnieuw zien
  status     laat spelstatus zien
  help       deze uitleg
  quit       stop het spel

`)
}
