package composer

import (
	"strconv"
	"strings"

	"github.com/voxflow/voxflow/pkg/models"
)

// branchPalette is the fixed 5-color cycle for router branch pills.
var branchPalette = [5]string{"#6366f1", "#10b981", "#f59e0b", "#ec4899", "#06b6d4"}

// BranchDefaultColor is the neutral gray used for catch-all branches.
const BranchDefaultColor = "#9ca3af"

// BranchColor returns the pill color for the branch at the given index.
// Branches labeled "otherwise" or "default" (case-insensitive) always get the
// neutral color regardless of position; everything else cycles the palette.
func BranchColor(index int, label string) string {
	if (models.RouterBranch{Label: label}).IsDefault() {
		return BranchDefaultColor
	}

	if index < 0 {
		index = 0
	}

	return branchPalette[index%len(branchPalette)]
}

// BranchHandle names the graph-edge source handle for the branch at index,
// so downstream nodes can attach to a specific branch.
func BranchHandle(index int) string {
	return "branch-" + strconv.Itoa(index)
}

func parseBranchHandle(handle string) (int, bool) {
	rest, ok := strings.CutPrefix(handle, "branch-")
	if !ok {
		return 0, false
	}

	index, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}

	return index, true
}

// BranchPill is the render model for one router branch.
type BranchPill struct {
	Index  int    `json:"index"`
	Label  string `json:"label"`
	Handle string `json:"handle"`
	Color  string `json:"color"`
}

// BranchPills builds the render models for a router's branches.
func BranchPills(branches []models.RouterBranch) []BranchPill {
	pills := make([]BranchPill, len(branches))

	for i, branch := range branches {
		pills[i] = BranchPill{
			Index:  i,
			Label:  branch.Label,
			Handle: BranchHandle(i),
			Color:  BranchColor(i, branch.Label),
		}
	}

	return pills
}
