package explore

import "container/heap"

// findPath computes a shortest 4-connected walkable path from start to goal
// using A* with unit edge cost and the Euclidean distance heuristic
// (admissible: the actual cost is never less than the straight-line
// distance). The returned path excludes start and ends with goal; nil means
// the goal is unreachable.
func findPath(start, goal Cell, g Grid) []Cell {
	open := &nodeQueue{}
	heap.Init(open)
	heap.Push(open, &node{cell: start, priority: start.DistanceTo(goal)})

	cameFrom := make(map[Cell]Cell)
	gScore := map[Cell]float64{start: 0}

	for open.Len() > 0 {
		current := heap.Pop(open).(*node).cell
		if current == goal {
			return rebuildPath(cameFrom, start, goal)
		}

		for _, d := range directions {
			next := current.Add(d)
			if next.X < 0 || next.Y < 0 || next.X >= g.Width() || next.Y >= g.Height() {
				continue
			}
			if !g.IsWalkable(next.X, next.Y) {
				continue
			}

			tentative := gScore[current] + 1
			if old, seen := gScore[next]; seen && tentative >= old {
				continue
			}
			cameFrom[next] = current
			gScore[next] = tentative
			heap.Push(open, &node{
				cell:     next,
				priority: tentative + next.DistanceTo(goal),
			})
		}
	}

	return nil
}

// rebuildPath walks the cameFrom tree from goal back to start and reverses
// the result.
func rebuildPath(cameFrom map[Cell]Cell, start, goal Cell) []Cell {
	var path []Cell
	for at := goal; at != start; {
		path = append(path, at)
		prev, ok := cameFrom[at]
		if !ok {
			return nil
		}
		at = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

type node struct {
	cell     Cell
	priority float64 // f-score: cost so far plus heuristic
	index    int
}

// nodeQueue is a min-heap of search nodes ordered by f-score.
type nodeQueue []*node

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].priority < q[j].priority }

func (q nodeQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *nodeQueue) Push(x any) {
	n := x.(*node)
	n.index = len(*q)
	*q = append(*q, n)
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	item.index = -1
	*q = old[:n-1]
	return item
}
