// Package domain collects the single-byte domain separators bound into
// every Poseidon hash use-site (spec §3). These values are cross-system
// constants shared with the arithmetic circuits and the on-chain
// program; they are never renumbered.
package domain

const (
	Commit        byte = 1
	SpendNull     byte = 2
	ActionNull    byte = 3
	NullifierKey  byte = 4
	Stealth       byte = 5
	Merkle        byte = 6
	EmptyLeaf     byte = 7
	Position      byte = 8
	LP            byte = 9
	WalletDerive  byte = 0x01
	IVK           byte = 0x10
)
