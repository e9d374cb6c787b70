package dungeon

import "math/rand"

// Room generation defaults.
const (
	defaultMinRoomSize  = 4
	defaultMaxRoomSize  = 9
	defaultRoomAttempts = 40
)

type room struct {
	x, y, w, h int
}

func (r room) centerX() int { return r.x + r.w/2 }
func (r room) centerY() int { return r.y + r.h/2 }

// overlaps reports whether the two rooms touch, including a one-tile gap so
// adjacent rooms keep a wall between them.
func (r room) overlaps(o room) bool {
	return r.x-1 < o.x+o.w && o.x-1 < r.x+r.w &&
		r.y-1 < o.y+o.h && o.y-1 < r.y+r.h
}

// generateRooms scatters non-overlapping rectangular rooms and joins each
// room to the previous one with an L-shaped corridor, which keeps the whole
// floor set connected.
func generateRooms(cfg Config, rng *rand.Rand) *Dungeon {
	minSize := cfg.MinRoomSize
	if minSize <= 0 {
		minSize = defaultMinRoomSize
	}
	maxSize := cfg.MaxRoomSize
	if maxSize < minSize {
		maxSize = defaultMaxRoomSize
	}
	attempts := cfg.RoomAttempts
	if attempts <= 0 {
		attempts = defaultRoomAttempts
	}
	// Rooms must fit inside the outer wall ring.
	if maxSize > cfg.Width-2 {
		maxSize = cfg.Width - 2
	}
	if maxSize > cfg.Height-2 {
		maxSize = cfg.Height - 2
	}
	if minSize > maxSize {
		minSize = maxSize
	}

	d := newSolid(cfg.Width, cfg.Height)

	var rooms []room
	for i := 0; i < attempts; i++ {
		w := minSize + rng.Intn(maxSize-minSize+1)
		h := minSize + rng.Intn(maxSize-minSize+1)
		r := room{
			x: 1 + rng.Intn(cfg.Width-w-1),
			y: 1 + rng.Intn(cfg.Height-h-1),
			w: w,
			h: h,
		}

		collides := false
		for _, other := range rooms {
			if r.overlaps(other) {
				collides = true
				break
			}
		}
		if collides {
			continue
		}

		d.carveRoom(r)
		if len(rooms) > 0 {
			prev := rooms[len(rooms)-1]
			d.carveCorridor(prev.centerX(), prev.centerY(), r.centerX(), r.centerY(), rng)
		}
		rooms = append(rooms, r)
	}

	// Degenerate fall-back for tiny maps where no room fit: a single open
	// chamber so the dungeon is never all wall.
	if len(rooms) == 0 {
		d.carveRoom(room{x: 1, y: 1, w: cfg.Width - 2, h: cfg.Height - 2})
	}

	return d
}

func (d *Dungeon) carveRoom(r room) {
	for y := r.y; y < r.y+r.h; y++ {
		for x := r.x; x < r.x+r.w; x++ {
			d.tiles[y][x] = TileFloor
		}
	}
}

// carveCorridor digs an L-shaped corridor between two points, choosing the
// elbow orientation at random.
func (d *Dungeon) carveCorridor(x1, y1, x2, y2 int, rng *rand.Rand) {
	if rng.Intn(2) == 0 {
		d.carveH(x1, x2, y1)
		d.carveV(y1, y2, x2)
	} else {
		d.carveV(y1, y2, x1)
		d.carveH(x1, x2, y2)
	}
}

func (d *Dungeon) carveH(x1, x2, y int) {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	for x := x1; x <= x2; x++ {
		d.tiles[y][x] = TileFloor
	}
}

func (d *Dungeon) carveV(y1, y2, x int) {
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	for y := y1; y <= y2; y++ {
		d.tiles[y][x] = TileFloor
	}
}
