package components

// Charset maps glyph ids recorded by the game to printable runes.
type Charset string

const (
	CharsetASCII Charset = "ascii"
	CharsetCP437 Charset = "cp437"
)

// Code page 437, sixteen glyphs per row. Id 0 and 255 render as blanks.
var cp437 = []rune(
	" ☺☻♥♦♣♠•◘○◙♂♀♪♫☼" +
	"►◄↕‼¶§▬↨↑↓→←∟↔▲▼" +
	" !\"#$%&'()*+,-./" +
	"0123456789:;<=>?" +
	"@ABCDEFGHIJKLMNO" +
	"PQRSTUVWXYZ[\\]^_" +
	"`abcdefghijklmno" +
	"pqrstuvwxyz{|}~⌂" +
	"ÇüéâäàåçêëèïîìÄÅ" +
	"ÉæÆôöòûùÿÖÜ¢£¥₧ƒ" +
	"áíóúñÑªº¿⌐¬½¼¡«»" +
	"░▒▓│┤╡╢╖╕╣║╗╝╜╛┐" +
	"└┴┬├─┼╞╟╚╔╩╦╠═╬╧" +
	"╨╤╥╙╘╒╓╫╪┘┌█▄▌▐▀" +
	"αßΓπΣσµτΦΘΩδ∞φε∩" +
	"≡±≥≤⌠⌡÷≈°∙·√ⁿ²■ ")

// Unknown is drawn for ids the charset has no glyph for.
const Unknown = '?'

// Glyph returns the rune for id.
func (c Charset) Glyph(id int) rune {
	if id == 0 {
		return ' '
	}
	if c == CharsetCP437 {
		if id > 0 && id < len(cp437) {
			return cp437[id]
		}
		return Unknown
	}
	if id >= 32 && id < 127 {
		return rune(id)
	}
	return Unknown
}
