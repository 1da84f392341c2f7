// ec2search/view
// MIT License Copyright(c) 2026 Hiroshi Shimamoto
// vim:set sw=4 sts=4:

// Package view shows a report as a scrollable table in the terminal.
package view

import (
    "fmt"

    "github.com/gdamore/tcell"

    "github.com/hshimamoto/ec2search/report"
)

const maxWidth = 32

var (
    headerStyle = tcell.StyleDefault.Reverse(true)
    statusStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

func putmsg(s tcell.Screen, x, y int, msg string, style tcell.Style) int {
    for _, r := range []rune(msg) {
	s.SetContent(x, y, r, nil, style)
	x++
    }
    return x
}

func clip(msg string, w int) string {
    rs := []rune(msg)
    if len(rs) <= w {
	return msg
    }
    if w <= 1 {
	return string(rs[:w])
    }
    return string(rs[:w-1]) + "~"
}

// widths of each column, capped at maxWidth
func widths(r report.Report) []int {
    ws := make([]int, len(r.Columns))
    for i, c := range r.Columns {
	ws[i] = len([]rune(c))
    }
    for _, row := range r.Rows {
	for i, cell := range row {
	    if i < len(ws) && len([]rune(cell)) > ws[i] {
		ws[i] = len([]rune(cell))
	    }
	}
    }
    for i := range ws {
	if ws[i] > maxWidth {
	    ws[i] = maxWidth
	}
    }
    return ws
}

func putrow(s tcell.Screen, y int, cells []string, ws []int, style tcell.Style) {
    x := 0
    for i, w := range ws {
	cell := ""
	if i < len(cells) {
	    cell = cells[i]
	}
	putmsg(s, x, y, clip(cell, w), style)
	x += w + 2
    }
}

// Draw paints the header, the rows starting at offset and a status line.
func Draw(s tcell.Screen, r report.Report, offset int) {
    s.Clear()
    _, h := s.Size()
    ws := widths(r)
    putrow(s, 0, r.Columns, ws, headerStyle)
    body := h - 2
    y := 1
    for i := offset; i < len(r.Rows) && y <= body; i++ {
	putrow(s, y, r.Rows[i], ws, tcell.StyleDefault)
	y++
    }
    last := offset + body
    if last > len(r.Rows) {
	last = len(r.Rows)
    }
    first := offset + 1
    if len(r.Rows) == 0 {
	first = 0
    }
    status := fmt.Sprintf("rows %d-%d of %d  j/k: scroll  q: quit", first, last, len(r.Rows))
    putmsg(s, 0, h-1, status, statusStyle)
    s.Show()
}

func clamp(offset, rows, body int) int {
    if offset > rows-body {
	offset = rows - body
    }
    if offset < 0 {
	offset = 0
    }
    return offset
}

// Loop draws r on an initialized screen until the user quits.
func Loop(s tcell.Screen, r report.Report) {
    offset := 0
    for {
	Draw(s, r, offset)
	ev := s.PollEvent()
	if ev == nil {
	    return
	}
	_, h := s.Size()
	body := h - 2
	switch ev := ev.(type) {
	case *tcell.EventKey:
	    switch ev.Key() {
	    case tcell.KeyEscape, tcell.KeyEnter:
		return
	    case tcell.KeyDown:
		offset++
	    case tcell.KeyUp:
		offset--
	    case tcell.KeyPgDn:
		offset += body
	    case tcell.KeyPgUp:
		offset -= body
	    case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
		    return
		case 'j':
		    offset++
		case 'k':
		    offset--
		}
	    }
	case *tcell.EventResize:
	    s.Sync()
	}
	offset = clamp(offset, len(r.Rows), body)
    }
}

// Open initializes the terminal. The caller must Fini the screen.
func Open() (tcell.Screen, error) {
    screen, err := tcell.NewScreen()
    if err != nil {
	return nil, err
    }
    if err := screen.Init(); err != nil {
	return nil, err
    }
    return screen, nil
}
