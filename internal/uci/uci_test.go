//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

package uci

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jwkunz/plumgo/internal/position"
)

func TestUciCommand(t *testing.T) {
	u := New()
	result := u.Command("uci")
	assert.Contains(t, result, "id name "+engineName)
	assert.Contains(t, result, "id author "+engineAuthor)
	assert.Contains(t, result, "option name Hash")
	assert.Contains(t, result, "uciok")
}

func TestIsReadyCommand(t *testing.T) {
	u := New()
	result := u.Command("isready")
	assert.Contains(t, result, "readyok")
}

func TestLoopQuits(t *testing.T) {
	u := New()
	u.InIo = bufio.NewScanner(strings.NewReader("uci\nquit\n"))
	buf := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buf)
	u.Loop()
	assert.Contains(t, buf.String(), "uciok")
}

func TestSetOptionHash(t *testing.T) {
	u := New()
	result := u.Command("setoption name Hash value 128")
	assert.Empty(t, result)
}

func TestSetOptionUnknown(t *testing.T) {
	u := New()
	result := u.Command("setoption name NotARealOption value 1")
	assert.Contains(t, result, "info string")
}

func TestPositionStartpos(t *testing.T) {
	u := New()
	u.Command("position startpos")
	assert.Equal(t, position.StartFen, u.myPosition.StringFen())
}

func TestPositionStartposWithMoves(t *testing.T) {
	u := New()
	u.Command("position startpos moves e2e4 e7e5")
	assert.Equal(t, 2, u.myPosition.Ply())
}

func TestPositionFen(t *testing.T) {
	u := New()
	fen := "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
	u.Command("position fen " + fen)
	assert.Equal(t, fen, u.myPosition.StringFen())
}

func TestPositionInvalidMove(t *testing.T) {
	u := New()
	result := u.Command("position startpos moves e2e5")
	assert.Contains(t, result, "info string")
}

func TestGoDepthOneProducesInfoAndBestmove(t *testing.T) {
	u := New()
	u.Command("position startpos")
	buf := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buf)
	u.handleReceivedCommand("go depth 1")
	waitForBestmove(t, buf)
	result := buf.String()
	assert.Contains(t, result, "info depth 1")
	assert.Contains(t, result, "bestmove")
}

func TestGoMateOne(t *testing.T) {
	u := New()
	u.Command("position fen 6k1/5Q2/6K1/8/8/8/8/8 w - - 0 1")
	buf := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buf)
	u.handleReceivedCommand("go mate 1")
	waitForBestmove(t, buf)
	assert.Contains(t, buf.String(), "bestmove f7g7")
}

func waitForBestmove(t *testing.T, buf *bytes.Buffer) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if strings.Contains(buf.String(), "bestmove") {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("timed out waiting for bestmove")
}
