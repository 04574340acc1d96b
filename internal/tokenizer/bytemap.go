package tokenizer

// Byte-level BPE never feeds raw bytes to the merge rules. Every byte value
// is first mapped onto a printable rune: bytes that are already printable
// map to themselves, the rest are remapped above U+0100 in byte order. The
// space byte lands on U+0120, the leading-space marker seen in merge rules.
var (
	byteRunes [256]rune
	runeBytes map[rune]byte
)

func init() {
	runeBytes = make(map[rune]byte, 256)
	n := 0
	for b := 0; b < 256; b++ {
		r := rune(b)
		if !printableByte(b) {
			r = rune(256 + n)
			n++
		}
		byteRunes[b] = r
		runeBytes[r] = byte(b)
	}
}

// printableByte reports whether b renders as itself in the byte-to-rune
// table: the visible ASCII range plus the Latin-1 ranges that exclude the
// soft hyphen and the control block.
func printableByte(b int) bool {
	return (b >= '!' && b <= '~') || (b >= 0xA1 && b <= 0xAC) || (b >= 0xAE && b <= 0xFF)
}
