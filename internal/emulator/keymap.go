package emulator

// keyLayout maps the left side of a QWERTY keyboard to the COSMAC VIP keypad:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
var keyLayout = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

// KeyForRune returns the keypad key for a keyboard character.
// Upper case characters map to the same key.
func KeyForRune(r rune) (uint8, bool) {
	if r >= 'A' && r <= 'Z' {
		r += 'a' - 'A'
	}
	key, ok := keyLayout[r]
	return key, ok
}
