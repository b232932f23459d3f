package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
	errW   io.Writer

	heading *color.Color
	good    *color.Color
	warn    *color.Color
	bad     *color.Color
	dim     *color.Color
}

// NewOutput creates a new Output formatter writing to w and errW
func NewOutput(format string, w, errW io.Writer, noColor bool) *Output {
	o := &Output{
		format:  format,
		w:       w,
		errW:    errW,
		heading: color.New(color.FgCyan, color.Bold),
		good:    color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		bad:     color.New(color.FgRed),
		dim:     color.New(color.Faint),
	}
	if noColor {
		for _, c := range []*color.Color{o.heading, o.good, o.warn, o.bad, o.dim} {
			c.DisableColor()
		}
	}
	return o
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		_, _ = fmt.Fprintln(o.errW, string(data))
	} else {
		_, _ = o.bad.Fprintf(o.errW, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		_, _ = fmt.Fprintln(o.w, string(data))
	} else {
		_, _ = o.good.Fprintln(o.w, msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case Session:
		o.printSession(v)
	case Availability:
		o.printAvailability(v)
	case Game:
		o.printGame(v)
	case GameList:
		o.printGameList(v)
	case Badge:
		o.printBadge(v)
	case ItemList:
		o.printItemList(v)
	case Purchase:
		o.printPurchase(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	Username   string   `json:"username"`
	Currency   int64    `json:"currency"`
	OwnedItems []string `json:"ownedItems"`
	IsAdmin    bool     `json:"isAdmin,omitempty"`
}

// Session response type; User is nil when logged out
type Session struct {
	User *User `json:"user"`
}

// Availability response type
type Availability struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

// Badge response type
type Badge struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Game response type
type Game struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Creator     string    `json:"creator"`
	Badges      []Badge   `json:"badges"`
	CreatedAt   time.Time `json:"createdAt"`
	Likes       int       `json:"likes"`
	Dislikes    int       `json:"dislikes"`
	MyVote      string    `json:"myVote,omitempty"`
}

// GameList response type
type GameList struct {
	Games []Game `json:"games"`
}

// Item response type
type Item struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Icon  string `json:"icon"`
	Owned bool   `json:"owned"`
}

// ItemList response type
type ItemList struct {
	Items []Item `json:"items"`
}

// Purchase response type
type Purchase struct {
	Item Item `json:"item"`
	User User `json:"user"`
}

// HealthResult response type
type HealthResult struct {
	Status    string `json:"status"`
	Server    string `json:"server,omitempty"`
	LatencyMS int64  `json:"latencyMs,omitempty"`
}

// coins formats a balance with thousands separators
func coins(n int64) string {
	if n == 1 || n == -1 {
		return humanize.Comma(n) + " coin"
	}
	return humanize.Comma(n) + " coins"
}

func (o *Output) printUser(u User) {
	_, _ = o.heading.Fprintf(o.w, "User: %s", u.Username)
	if u.IsAdmin {
		_, _ = o.warn.Fprint(o.w, " [admin]")
	}
	_, _ = fmt.Fprintln(o.w)

	balance := o.good
	if u.Currency < 0 {
		balance = o.bad
	}
	_, _ = fmt.Fprint(o.w, "Balance: ")
	_, _ = balance.Fprintln(o.w, coins(u.Currency))

	if len(u.OwnedItems) == 0 {
		_, _ = fmt.Fprintln(o.w, "Items: none")
	} else {
		_, _ = fmt.Fprintf(o.w, "Items: %s\n", strings.Join(u.OwnedItems, ", "))
	}
}

func (o *Output) printSession(s Session) {
	if s.User == nil {
		_, _ = o.dim.Fprintln(o.w, "Not logged in")
		return
	}
	o.printUser(*s.User)
}

func (o *Output) printAvailability(a Availability) {
	if a.Available {
		_, _ = o.good.Fprintf(o.w, "%s is available\n", a.Username)
	} else {
		_, _ = o.bad.Fprintf(o.w, "%s is taken\n", a.Username)
	}
}

func (o *Output) printGame(g Game) {
	_, _ = o.heading.Fprintf(o.w, "%s", g.Name)
	_, _ = o.dim.Fprintf(o.w, " (%s)\n", g.ID)
	if g.Description != "" {
		_, _ = fmt.Fprintln(o.w, g.Description)
	}
	_, _ = fmt.Fprintf(o.w, "By %s, published %s\n", g.Creator, humanize.Time(g.CreatedAt))
	_, _ = fmt.Fprintf(o.w, "👍 %s  👎 %s", humanize.Comma(int64(g.Likes)), humanize.Comma(int64(g.Dislikes)))
	if g.MyVote != "" {
		_, _ = o.dim.Fprintf(o.w, "  (you voted %s)", g.MyVote)
	}
	_, _ = fmt.Fprintln(o.w)

	if len(g.Badges) > 0 {
		_, _ = fmt.Fprintf(o.w, "Badges (%d):\n", len(g.Badges))
		for _, b := range g.Badges {
			_, _ = fmt.Fprintf(o.w, "  %s %s - %s", b.Icon, b.Name, b.Description)
			_, _ = o.dim.Fprintf(o.w, " [%s]\n", b.ID)
		}
	}
}

func (o *Output) printGameList(l GameList) {
	if len(l.Games) == 0 {
		_, _ = o.dim.Fprintln(o.w, "No games")
		return
	}
	for i, g := range l.Games {
		if i > 0 {
			_, _ = fmt.Fprintln(o.w)
		}
		o.printGame(g)
	}
}

func (o *Output) printBadge(b Badge) {
	_, _ = o.good.Fprintf(o.w, "Badge added: %s %s", b.Icon, b.Name)
	_, _ = o.dim.Fprintf(o.w, " [%s]\n", b.ID)
}

func (o *Output) printItemList(l ItemList) {
	for _, item := range l.Items {
		_, _ = fmt.Fprintf(o.w, "%s %s - %s", item.Icon, item.Name, coins(item.Price))
		_, _ = o.dim.Fprintf(o.w, " [%s]", item.ID)
		if item.Owned {
			_, _ = o.good.Fprint(o.w, " owned")
		}
		_, _ = fmt.Fprintln(o.w)
	}
}

func (o *Output) printPurchase(p Purchase) {
	_, _ = o.good.Fprintf(o.w, "Bought %s %s for %s\n", p.Item.Icon, p.Item.Name, coins(p.Item.Price))
	_, _ = fmt.Fprintf(o.w, "Balance: %s\n", coins(p.User.Currency))
}

func (o *Output) printHealthResult(h HealthResult) {
	_, _ = fmt.Fprintf(o.w, "Status: %s\n", h.Status)
	if h.Server != "" {
		_, _ = fmt.Fprintf(o.w, "Server: %s (%dms)\n", h.Server, h.LatencyMS)
	}
}
