//
// plumgo - UCI chess engine in Go
//
// MIT License
//
// Copyright (c) 2018-2020 Frank Kopp
//

// Package uci is the line-oriented UCI wire protocol handler: it reads
// commands from stdin (or any bufio.Scanner), drives one internal/engine
// façade instance, and writes "id"/"option"/"info"/"bestmove" responses.
// It is the only package that imports internal/engine for the purpose of
// driving it from text, keeping that wiring out of the search/engine core
// itself.
package uci

import (
	"bufio"
	"bytes"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jwkunz/plumgo/internal/engine"
	myLogging "github.com/jwkunz/plumgo/internal/logging"
	"github.com/jwkunz/plumgo/internal/movegen"
	"github.com/jwkunz/plumgo/internal/moveslice"
	"github.com/jwkunz/plumgo/internal/position"
	. "github.com/jwkunz/plumgo/internal/types"
)

var out = message.NewPrinter(language.German)

const engineName = "plumgo"
const engineAuthor = "the plumgo contributors"

// UciHandler owns the one Engine instance for the process and the current
// position, and translates UCI text commands to/from calls on it.
type UciHandler struct {
	InIo  *bufio.Scanner
	OutIo *bufio.Writer

	myEngine   *engine.Engine
	myMoveGen  *movegen.Movegen
	myPosition *position.Position

	log *logging.Logger
}

// New creates a UciHandler reading from stdin and writing to stdout.
func New() *UciHandler {
	u := &UciHandler{
		InIo:       bufio.NewScanner(os.Stdin),
		OutIo:      bufio.NewWriter(os.Stdout),
		myEngine:   engine.New(),
		myMoveGen:  movegen.NewMoveGen(),
		myPosition: position.NewPosition(),
		log:        myLogging.GetLog(),
	}
	u.myEngine.SetUciHandler(u)
	return u
}

// Loop reads and dispatches commands from InIo until "quit" is received.
func (u *UciHandler) Loop() {
	for u.InIo.Scan() {
		if u.handleReceivedCommand(u.InIo.Text()) {
			return
		}
	}
}

// Command runs a single command and returns everything it wrote, for
// tests and debugging; it temporarily redirects OutIo to a buffer.
func (u *UciHandler) Command(cmd string) string {
	saved := u.OutIo
	buf := new(bytes.Buffer)
	u.OutIo = bufio.NewWriter(buf)
	u.handleReceivedCommand(cmd)
	_ = u.OutIo.Flush()
	u.OutIo = saved
	return buf.String()
}

// ///////////////////////////////////////////////////////////
// search.UciDriver
// ///////////////////////////////////////////////////////////

// SendReadyOk implements search.UciDriver.
func (u *UciHandler) SendReadyOk() { u.send("readyok") }

// SendInfoString implements search.UciDriver.
func (u *UciHandler) SendInfoString(info string) { u.send(out.Sprintf("info string %s", info)) }

// SendIterationEndInfo implements search.UciDriver, reporting one
// completed iterative-deepening iteration.
func (u *UciHandler) SendIterationEndInfo(depth, seldepth int, value Value, nodes, nps uint64, elapsed time.Duration, pv moveslice.MoveSlice) {
	u.send(out.Sprintf("info depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
		depth, seldepth, value.String(), nodes, nps, elapsed.Milliseconds(), pv.StringUci()))
}

// SendResult implements search.UciDriver. This is intentionally a no-op:
// the façade's ChooseMove applies the mate-in-one and queen-promotion
// overrides to the search's raw result, so the authoritative "bestmove"
// line is emitted by goCommand once ChooseMove returns, not from here.
func (u *UciHandler) SendResult(bestMove, ponderMove Move) {}

// ///////////////////////////////////////////////////////////
// command dispatch
// ///////////////////////////////////////////////////////////

var regexWhiteSpace = regexp.MustCompile(`\s+`)

func (u *UciHandler) handleReceivedCommand(cmd string) bool {
	if len(strings.TrimSpace(cmd)) == 0 {
		return false
	}
	tokens := regexWhiteSpace.Split(strings.TrimSpace(cmd), -1)
	switch tokens[0] {
	case "quit":
		return true
	case "uci":
		u.uciCommand()
	case "setoption":
		u.setOptionCommand(tokens)
	case "isready":
		u.myEngine.IsReady()
	case "ucinewgame":
		u.myEngine.NewGame()
		u.myPosition = position.NewPosition()
	case "position":
		u.positionCommand(tokens)
	case "go":
		u.goCommand(tokens)
	case "stop":
		u.myEngine.StopSearch()
	case "ponderhit":
		u.sendInfoString("ponderhit not implemented")
	case "debug":
		u.sendInfoString("debug not implemented")
	case "register":
		u.sendInfoString("register not implemented")
	default:
		u.log.Warningf("unknown command: %s", cmd)
	}
	return false
}

func (u *UciHandler) uciCommand() {
	u.send("id name " + engineName)
	u.send("id author " + engineAuthor)
	for _, o := range uciOptionLines {
		u.send(o)
	}
	u.send("uciok")
}

func (u *UciHandler) setOptionCommand(tokens []string) {
	if len(tokens) < 3 || tokens[1] != "name" {
		u.sendInfoString("setoption malformed, expected 'setoption name <id> [value <x>]'")
		return
	}
	i := 2
	var name strings.Builder
	for i < len(tokens) && tokens[i] != "value" {
		if name.Len() > 0 {
			name.WriteByte(' ')
		}
		name.WriteString(tokens[i])
		i++
	}
	value := ""
	if i < len(tokens)-1 && tokens[i] == "value" {
		value = strings.Join(tokens[i+1:], " ")
	}
	if err := u.myEngine.SetOption(name.String(), value); err != nil {
		u.sendInfoString(err.Error())
	}
}

func (u *UciHandler) positionCommand(tokens []string) {
	if len(tokens) < 2 {
		u.sendInfoString(out.Sprintf("position malformed: %v", tokens))
		return
	}
	fen := position.StartFen
	i := 1
	switch tokens[i] {
	case "startpos":
		i++
	case "fen":
		i++
		var fenb strings.Builder
		for i < len(tokens) && tokens[i] != "moves" {
			fenb.WriteString(tokens[i])
			fenb.WriteString(" ")
			i++
		}
		if trimmed := strings.TrimSpace(fenb.String()); trimmed != "" {
			fen = trimmed
		}
	default:
		u.sendInfoString(out.Sprintf("position malformed: %v", tokens))
		return
	}

	newPos, err := position.NewPositionFen(fen)
	if err != nil {
		u.sendInfoString(out.Sprintf("position rejected invalid FEN: %s", err.Error()))
		return
	}

	if i < len(tokens) && tokens[i] == "moves" {
		i++
		for ; i < len(tokens); i++ {
			move := u.myMoveGen.MoveFromUci(newPos, tokens[i])
			if !move.IsValid() {
				u.sendInfoString(out.Sprintf("position malformed: illegal move %s", tokens[i]))
				return
			}
			newPos.DoMove(move)
		}
	}
	u.myPosition = newPos
}

func (u *UciHandler) goCommand(tokens []string) {
	params, ok := u.readGoParams(tokens)
	if !ok {
		return
	}
	pos := *u.myPosition
	go u.runSearch(pos, params)
}

func (u *UciHandler) runSearch(pos position.Position, params engine.GoParams) {
	best, ponder, info := u.myEngine.ChooseMove(pos, params)
	for _, line := range info {
		u.send(line)
	}
	u.sendBestMove(best, ponder)
}

func (u *UciHandler) sendBestMove(best, ponder Move) {
	var b strings.Builder
	b.WriteString("bestmove ")
	if best == MoveNone {
		b.WriteString("0000")
	} else {
		b.WriteString(best.StringUci())
	}
	if ponder != MoveNone {
		b.WriteString(" ponder ")
		b.WriteString(ponder.StringUci())
	}
	u.send(b.String())
}

func (u *UciHandler) readGoParams(tokens []string) (engine.GoParams, bool) {
	var g engine.GoParams
	i := 1
	for i < len(tokens) {
		switch tokens[i] {
		case "infinite":
			g.Infinite = true
			i++
		case "ponder":
			g.Ponder = true
			i++
		case "searchmoves":
			i++
			for i < len(tokens) {
				move := u.myMoveGen.MoveFromUci(u.myPosition, tokens[i])
				if !move.IsValid() {
					break
				}
				g.SearchMoves.PushBack(move)
				i++
			}
		case "depth":
			v, ok := u.parseInt(tokens, &i, "depth")
			if !ok {
				return g, false
			}
			g.Depth = v
		case "nodes":
			v, ok := u.parseUint64(tokens, &i, "nodes")
			if !ok {
				return g, false
			}
			g.Nodes = v
		case "mate":
			v, ok := u.parseInt(tokens, &i, "mate")
			if !ok {
				return g, false
			}
			g.Mate = v
		case "movetime":
			v, ok := u.parseInt(tokens, &i, "movetime")
			if !ok {
				return g, false
			}
			g.MoveTime = time.Duration(v) * time.Millisecond
		case "wtime":
			v, ok := u.parseInt(tokens, &i, "wtime")
			if !ok {
				return g, false
			}
			g.WhiteTime = time.Duration(v) * time.Millisecond
		case "btime":
			v, ok := u.parseInt(tokens, &i, "btime")
			if !ok {
				return g, false
			}
			g.BlackTime = time.Duration(v) * time.Millisecond
		case "winc":
			v, ok := u.parseInt(tokens, &i, "winc")
			if !ok {
				return g, false
			}
			g.WhiteInc = time.Duration(v) * time.Millisecond
		case "binc":
			v, ok := u.parseInt(tokens, &i, "binc")
			if !ok {
				return g, false
			}
			g.BlackInc = time.Duration(v) * time.Millisecond
		case "movestogo":
			v, ok := u.parseInt(tokens, &i, "movestogo")
			if !ok {
				return g, false
			}
			g.MovesToGo = v
		default:
			u.sendInfoString(out.Sprintf("go malformed: unknown subcommand %s", tokens[i]))
			return g, false
		}
	}
	return g, true
}

func (u *UciHandler) parseInt(tokens []string, i *int, field string) (int, bool) {
	*i++
	if *i >= len(tokens) {
		u.sendInfoString(out.Sprintf("go malformed: %s missing a value", field))
		return 0, false
	}
	v, err := strconv.Atoi(tokens[*i])
	if err != nil {
		u.sendInfoString(out.Sprintf("go malformed: %s value %q is not a number", field, tokens[*i]))
		return 0, false
	}
	*i++
	return v, true
}

func (u *UciHandler) parseUint64(tokens []string, i *int, field string) (uint64, bool) {
	*i++
	if *i >= len(tokens) {
		u.sendInfoString(out.Sprintf("go malformed: %s missing a value", field))
		return 0, false
	}
	v, err := strconv.ParseUint(tokens[*i], 10, 64)
	if err != nil {
		u.sendInfoString(out.Sprintf("go malformed: %s value %q is not a number", field, tokens[*i]))
		return 0, false
	}
	*i++
	return v, true
}

func (u *UciHandler) sendInfoString(s string) {
	u.SendInfoString(s)
}

func (u *UciHandler) send(s string) {
	_, _ = u.OutIo.WriteString(s + "\n")
	_ = u.OutIo.Flush()
}
