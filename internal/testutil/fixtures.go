package testutil

// Well-known step words.
const (
	// AllRedWord holds every light on red for one second.
	AllRedWord uint16 = 0x1249
	// Terminator ends a cycle.
	Terminator uint16 = 0x0000
)

// SampleCycleWords is a four-phase intersection: vertical green, vertical
// yellow, horizontal green, horizontal yellow, followed by the terminator.
var SampleCycleWords = []uint16{
	0x584C, // 5s top and bottom green
	0x244A, // 2s top and bottom yellow
	0x5321, // 5s left and right green
	0x2291, // 2s left and right yellow
	Terminator,
}

// SampleCycleYAML describes the same cycle as SampleCycleWords.
const SampleCycleYAML = `steps:
  - duration: 5
    lights:
      top: [green]
      bottom: [green]
      left: [red]
      right: [red]
  - duration: 2
    lights:
      top: [yellow]
      bottom: [yellow]
      left: [red]
      right: [red]
  - duration: 5
    lights:
      top: [red]
      bottom: [red]
      left: [green]
      right: [green]
  - duration: 2
    lights:
      top: [red]
      bottom: [red]
      left: [yellow]
      right: [yellow]
`

// Words encodes step words as a big-endian byte stream.
func Words(words ...uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	for _, w := range words {
		out = append(out, byte(w>>8), byte(w))
	}
	return out
}

// RepeatWord returns n copies of word.
func RepeatWord(word uint16, n int) []uint16 {
	out := make([]uint16, n)
	for i := range out {
		out[i] = word
	}
	return out
}
