package nvim

// AttachUI hands the editor a grid of the given size to draw into. The
// option set pins the line-grid protocol with per-window grids and 24-bit
// color; everything else stays internal to the editor.
func (s *Session) AttachUI(cols, rows int) uint64 {
	return s.Call("nvim_ui_attach", cols, rows, map[string]any{
		"rgb":           true,
		"ext_linegrid":  true,
		"ext_multigrid": true,
	})
}

// DetachUI disconnects the UI without stopping the editor.
func (s *Session) DetachUI() uint64 {
	return s.Call("nvim_ui_detach")
}

// Input feeds keys in the editor's key notation, e.g. "ihello<Esc>".
func (s *Session) Input(keys string) uint64 {
	return s.Call("nvim_input", keys)
}

// InputMouse reports a mouse action at a grid position.
func (s *Session) InputMouse(button Button, action Action, mods Modifiers, grid, row, col int) uint64 {
	return s.Call("nvim_input_mouse",
		button.String(), action.String(), mods.String(), grid, row, col)
}

// TryResize asks the editor to lay the whole UI out for a new screen size.
func (s *Session) TryResize(cols, rows int) uint64 {
	return s.Call("nvim_ui_try_resize", cols, rows)
}

// TryResizeGrid asks the editor to resize a single grid; the result arrives
// as a grid_resize event when the editor obliges.
func (s *Session) TryResizeGrid(grid, cols, rows int) uint64 {
	return s.Call("nvim_ui_try_resize_grid", grid, cols, rows)
}

// Paste hands the editor a block of pasted text, bypassing key notation.
// Phase -1 delivers the whole paste in one call.
func (s *Session) Paste(text string) uint64 {
	return s.Call("nvim_paste", text, true, -1)
}

// Command executes an ex command.
func (s *Session) Command(cmd string) uint64 {
	return s.Call("nvim_command", cmd)
}
