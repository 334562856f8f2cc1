package core

// Color is a foreground color for a screen cell.
// The platform maps each value to an ANSI color; games only pick semantic names.
type Color uint8

const (
	ColorDefault Color = iota
	ColorSky           // Background fill
	ColorPipe          // Pipe body
	ColorPipeCap       // Pipe rim next to the gap
	ColorBird          // Bird sprite
	ColorText          // HUD text
	ColorAlert         // "Game Over" label
	ColorButton        // Restart button body
)
