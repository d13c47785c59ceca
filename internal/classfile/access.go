package classfile

import "strings"

// Method access flags as stored in the class file
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSynchronized = 0x0020
	AccBridge       = 0x0040
	AccVarargs      = 0x0080
	AccNative       = 0x0100
	AccAbstract     = 0x0400
	AccStrict       = 0x0800
	AccSynthetic    = 0x1000
)

// keyword order follows java.lang.reflect.Modifier.toString. The bridge and
// varargs bits share values with the field modifiers volatile and transient,
// so they render under those names.
var modifierKeywords = []struct {
	flag    uint16
	keyword string
}{
	{AccPublic, "public"},
	{AccProtected, "protected"},
	{AccPrivate, "private"},
	{AccAbstract, "abstract"},
	{AccStatic, "static"},
	{AccFinal, "final"},
	{AccVarargs, "transient"},
	{AccBridge, "volatile"},
	{AccSynchronized, "synchronized"},
	{AccNative, "native"},
	{AccStrict, "strictfp"},
}

// suppressedKeyword is dropped from rendered modifiers: on a method it only
// means the compiler marked the method varargs.
const suppressedKeyword = "transient"

// Modifiers renders method access flags as a space separated keyword list,
// e.g. "public static final". A method with no keyword flags yields "".
func Modifiers(access uint16) string {
	keywords := make([]string, 0, 4)
	for _, mk := range modifierKeywords {
		if access&mk.flag == 0 || mk.keyword == suppressedKeyword {
			continue
		}
		keywords = append(keywords, mk.keyword)
	}
	return strings.Join(keywords, " ")
}
