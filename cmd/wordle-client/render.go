package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/game"
	"github.com/robalobadob/wordle/apps/tcp-server/internal/protocol"
)

type renderer struct {
	out     io.Writer
	hit     *color.Color
	present *color.Color
	miss    *color.Color
	warn    *color.Color
}

func newRenderer(out io.Writer, noColor bool) *renderer {
	r := &renderer{
		out:     out,
		hit:     color.New(color.FgBlack, color.BgGreen, color.Bold),
		present: color.New(color.FgBlack, color.BgYellow, color.Bold),
		miss:    color.New(color.FgWhite, color.BgHiBlack),
		warn:    color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{r.hit, r.present, r.miss, r.warn} {
			c.DisableColor()
		}
	}
	return r
}

func (r *renderer) prompt() { fmt.Fprint(r.out, "> ") }

// tiles renders feedback as one block per letter.
func (r *renderer) tiles(fb game.LetterFeedback) string {
	var b strings.Builder
	for i, ls := range fb {
		if i > 0 {
			b.WriteByte(' ')
		}
		tile := " " + strings.ToUpper(ls.Letter) + " "
		switch ls.State {
		case game.Hit:
			b.WriteString(r.hit.Sprint(tile))
		case game.Present:
			b.WriteString(r.present.Sprint(tile))
		default:
			b.WriteString(r.miss.Sprint(tile))
		}
	}
	return b.String()
}

func (r *renderer) response(resp protocol.Response) {
	if !resp.Valid {
		fmt.Fprintln(r.out, r.warn.Sprint(resp.Message))
		return
	}
	fmt.Fprintf(r.out, "%s  (%d)\n", r.tiles(resp.Feedback), resp.Attempts)
	if resp.GameOver {
		fmt.Fprintln(r.out, resp.Message)
	}
}
