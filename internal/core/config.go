package core

import "strconv"

// Empty is the cell value of an unoccupied location.
// Tiles are positive powers of two, so it never collides with a tile.
const Empty = 0

// Grid size limits. Grids are always square.
const (
	DefaultSize = 4
	MinSize     = 2
	MaxSize     = 8
	MaxCells    = MaxSize * MaxSize
)

// Search depth limits. Depth is the dominant cost of the search.
const (
	DefaultDepth = 6
	MinDepth     = 1
	MaxDepth     = 7
)

// WinTargets are the goal tiles offered by the game.
var WinTargets = []int{2048, 4096, 8192}

// IsPowerOfTwo reports whether v is a valid tile value.
func IsPowerOfTwo(v int) bool {
	return v > 0 && v&(v-1) == 0
}

// GameID returns the scoreboard key of games played on a size x size grid.
func GameID(size int) string {
	return "2048-" + strconv.Itoa(size)
}
