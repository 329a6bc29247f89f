// Command wordle-client is an interactive terminal client for the Wordle TCP
// server. Each line typed on stdin is sent as one guess; feedback is printed
// with colored tiles.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"github.com/robalobadob/wordle/apps/tcp-server/internal/protocol"
)

func main() {
	host := flag.String("host", "127.0.0.1", "Server host")
	port := flag.IntP("port", "p", 5175, "Server port")
	timeout := flag.Duration("timeout", 5*time.Second, "Connect timeout")
	noColor := flag.Bool("no-color", false, "Disable colored output")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, net.JoinHostPort(*host, strconv.Itoa(*port)), *timeout, *noColor); err != nil {
		fmt.Fprintln(os.Stderr, "wordle-client:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, addr string, timeout time.Duration, noColor bool) error {
	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s: %w", addr, err)
	}
	defer conn.Close()

	// unblock reads when interrupted
	go func() {
		<-ctx.Done()
		_ = conn.Close()
	}()

	r := newRenderer(os.Stdout, noColor)
	fmt.Fprintf(os.Stdout, "Connected to %s. Guess the 5-letter word.\n", addr)
	return play(conn, os.Stdin, r)
}

// play sends one guess per non-blank input line and renders each response
// until the game ends or either side closes.
func play(conn io.ReadWriter, in io.Reader, r *renderer) error {
	enc := json.NewEncoder(conn)
	dec := json.NewDecoder(conn)
	lines := bufio.NewScanner(in)

	r.prompt()
	for lines.Scan() {
		word := strings.TrimSpace(lines.Text())
		if word == "" {
			r.prompt()
			continue
		}
		if err := enc.Encode(protocol.Request{Guess: &word}); err != nil {
			return fmt.Errorf("send guess: %w", err)
		}

		var resp protocol.Response
		if err := dec.Decode(&resp); err != nil {
			if errors.Is(err, io.EOF) {
				return errors.New("server closed the connection")
			}
			return fmt.Errorf("read response: %w", err)
		}
		r.response(resp)
		if resp.GameOver {
			return nil
		}
		r.prompt()
	}
	return lines.Err()
}
