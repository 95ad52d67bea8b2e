package codec

import (
	"seabattle/internal/game"
	"seabattle/internal/zk"
)

// Secret is the defender's private commitment state. The Merkle tree is
// rebuilt from the layout, so only the layout and salt are stored.
type Secret struct {
	Layout  game.Layout `json:"layout"`
	SaltHex string      `json:"salt_hex"`
}

type ShotProofPayload struct {
	Proof  []byte        `json:"proof"`
	Public zk.ShotPublic `json:"public"` // root, cell index and hit bit
}
