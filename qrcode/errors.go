package qrcode

import "errors"

// Sentinel errors for every failure kind the codec distinguishes, per
// ISO/IEC 18004's data model and this module's decode pipeline.
var (
	ErrTextTooLong         = errors.New("qrcode: text does not fit in any supported version at the requested level")
	ErrInvalidCharacter    = errors.New("qrcode: character not representable in the requested mode")
	ErrUnsupportedMode     = errors.New("qrcode: unsupported or reserved mode indicator (Kanji and structured append are not supported)")
	ErrPrematureEnd        = errors.New("qrcode: bitstream ended before a segment's declared payload was fully read")
	ErrUncorrectableBlock  = errors.New("qrcode: one or more Reed-Solomon blocks exceeded their error-correction capacity")
	ErrFormatUnreadable    = errors.New("qrcode: format information could not be matched within BCH correction distance")
	ErrVersionUnreadable   = errors.New("qrcode: version information could not be matched within BCH correction distance")
	ErrSymbolNotFound      = errors.New("qrcode: no QR symbol could be localized in the supplied image")
	ErrUnsupportedVersion  = errors.New("qrcode: version is outside the supported range 1-40")
	ErrInvalidModuleLayout = errors.New("qrcode: decoded module grid is inconsistent with its declared version")
)
