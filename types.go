package columnar

import (
	"strconv"
	"strings"
)

// Type is the closed enumeration of logical types from spec.md §4.5. It
// plays the role the teacher's art.NodeType enum plays for node kinds
// (art/common_node_functions.go): a small closed tag, dispatched on with a
// switch, used by every layout to identify itself and by the format-string
// codec to move between the C Data Interface's wire representation and an
// in-memory layout.
type Type uint8

const (
	Null Type = iota
	Boolean
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
	Utf8
	LargeUtf8
	Binary
	LargeBinary
	Utf8View
	BinaryView
	FixedWidthBinary
	Date32
	Date64
	Timestamp // carries unit + timezone in FormatParams
	Duration  // carries unit in FormatParams
	IntervalMonths
	IntervalDayTime
	IntervalMonthDayNano
	Decimal
	List
	LargeList
	ListView
	LargeListView
	FixedSizeList
	Struct
	Map
	DenseUnion
	SparseUnion
	RunEndEncoded
	Dictionary
)

func (t Type) String() string {
	names := [...]string{
		"Null", "Boolean", "Int8", "Int16", "Int32", "Int64",
		"Uint8", "Uint16", "Uint32", "Uint64",
		"Float16", "Float32", "Float64",
		"Utf8", "LargeUtf8", "Binary", "LargeBinary",
		"Utf8View", "BinaryView", "FixedWidthBinary",
		"Date32", "Date64", "Timestamp", "Duration",
		"IntervalMonths", "IntervalDayTime", "IntervalMonthDayNano",
		"Decimal", "List", "LargeList", "ListView", "LargeListView",
		"FixedSizeList", "Struct", "Map", "DenseUnion", "SparseUnion",
		"RunEndEncoded", "Dictionary",
	}
	if int(t) < 0 || int(t) >= len(names) {
		return "Unknown"
	}
	return names[t]
}

// TimeUnit distinguishes the four resolutions timestamp and duration carry.
type TimeUnit uint8

const (
	Second TimeUnit = iota
	Millisecond
	Microsecond
	Nanosecond
)

// FormatParams carries the parameters a bare Type tag cannot: timestamp
// timezone/unit, fixed-width-binary/fixed-size-list width, decimal
// precision/scale/bit-width, and a union's type-id-to-child-index mapping.
type FormatParams struct {
	Unit         TimeUnit
	TimeZone     string // "" when absent
	Width        int    // fixed-width-binary byte width, or fixed-size-list k
	Precision    int
	Scale        int
	DecimalBits  int   // 32, 64, 128, or 256
	UnionTypeIDs []int8
}

// elementWidth returns the fixed storage width in bits for primitive,
// temporal, and decimal types, or 0 for variable-width/nested types. This
// is the "trait that maps each tag to ... its element width" spec.md §9
// asks for in place of template-recursion over a type list.
func elementWidth(t Type, p FormatParams) int {
	switch t {
	case Boolean:
		return 1
	case Int8, Uint8:
		return 8
	case Int16, Uint16, Float16:
		return 16
	case Int32, Uint32, Float32, Date32, IntervalMonths:
		return 32
	case Int64, Uint64, Float64, Date64, Timestamp, Duration, IntervalDayTime:
		return 64
	case IntervalMonthDayNano:
		return 128
	case Decimal:
		return p.DecimalBits
	default:
		return 0
	}
}

// ElementWidth is the exported form of elementWidth.
func ElementWidth(t Type, p FormatParams) int { return elementWidth(t, p) }

// formatString renders the canonical C Data Interface format string for
// (t, p), the inverse of ParseFormat. Producers always emit this canonical
// form (spec.md §6).
func formatString(t Type, p FormatParams) string {
	switch t {
	case Null:
		return "n"
	case Boolean:
		return "b"
	case Int8:
		return "c"
	case Int16:
		return "s"
	case Int32:
		return "i"
	case Int64:
		return "l"
	case Uint8:
		return "C"
	case Uint16:
		return "S"
	case Uint32:
		return "I"
	case Uint64:
		return "L"
	case Float16:
		return "e"
	case Float32:
		return "f"
	case Float64:
		return "g"
	case Utf8:
		return "u"
	case LargeUtf8:
		return "U"
	case Binary:
		return "z"
	case LargeBinary:
		return "Z"
	case Utf8View:
		return "vu"
	case BinaryView:
		return "vz"
	case FixedWidthBinary:
		return "w:" + strconv.Itoa(p.Width)
	case Date32:
		return "tdD"
	case Date64:
		return "tdm"
	case Timestamp:
		return "ts" + unitLetter(p.Unit) + ":" + p.TimeZone
	case Duration:
		return "tD" + unitLetter(p.Unit)
	case IntervalMonths:
		return "tiM"
	case IntervalDayTime:
		return "tiD"
	case IntervalMonthDayNano:
		return "tin"
	case Decimal:
		bits := p.DecimalBits
		if bits == 0 {
			bits = 128
		}
		s := "d:" + strconv.Itoa(p.Precision) + "," + strconv.Itoa(p.Scale)
		if bits != 128 {
			s += "," + strconv.Itoa(bits)
		}
		return s
	case List:
		return "+l"
	case LargeList:
		return "+L"
	case ListView:
		return "+vl"
	case LargeListView:
		return "+vL"
	case FixedSizeList:
		return "+w:" + strconv.Itoa(p.Width)
	case Struct:
		return "+s"
	case Map:
		return "+m"
	case DenseUnion:
		return "+ud:" + joinTypeIDs(p.UnionTypeIDs)
	case SparseUnion:
		return "+us:" + joinTypeIDs(p.UnionTypeIDs)
	case RunEndEncoded:
		return "+r"
	case Dictionary:
		return "dictionary" // never emitted at top level; encoded via the schema's dictionary slot
	default:
		return ""
	}
}

// FormatString is the exported form of formatString.
func FormatString(t Type, p FormatParams) string { return formatString(t, p) }

func unitLetter(u TimeUnit) string {
	switch u {
	case Second:
		return "s"
	case Millisecond:
		return "m"
	case Microsecond:
		return "u"
	case Nanosecond:
		return "n"
	default:
		return "s"
	}
}

func joinTypeIDs(ids []int8) string {
	var sb strings.Builder
	for i, id := range ids {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(id)))
	}
	return sb.String()
}

// ParseFormat decodes a C Data Interface format string into its Type tag
// and parameters. The mapping is total for legal inputs; an unrecognized
// format yields ErrFormatMismatch (spec.md §4.5: "unrecognized formats
// yield the distinguished NA value at the type-id level").
func ParseFormat(format string) (Type, FormatParams, error) {
	switch format {
	case "n":
		return Null, FormatParams{}, nil
	case "b":
		return Boolean, FormatParams{}, nil
	case "c":
		return Int8, FormatParams{}, nil
	case "s":
		return Int16, FormatParams{}, nil
	case "i":
		return Int32, FormatParams{}, nil
	case "l":
		return Int64, FormatParams{}, nil
	case "C":
		return Uint8, FormatParams{}, nil
	case "S":
		return Uint16, FormatParams{}, nil
	case "I":
		return Uint32, FormatParams{}, nil
	case "L":
		return Uint64, FormatParams{}, nil
	case "e":
		return Float16, FormatParams{}, nil
	case "f":
		return Float32, FormatParams{}, nil
	case "g":
		return Float64, FormatParams{}, nil
	case "u":
		return Utf8, FormatParams{}, nil
	case "U":
		return LargeUtf8, FormatParams{}, nil
	case "z":
		return Binary, FormatParams{}, nil
	case "Z":
		return LargeBinary, FormatParams{}, nil
	case "vu":
		return Utf8View, FormatParams{}, nil
	case "vz":
		return BinaryView, FormatParams{}, nil
	case "tdD":
		return Date32, FormatParams{}, nil
	case "tdm":
		return Date64, FormatParams{}, nil
	case "tiM":
		return IntervalMonths, FormatParams{}, nil
	case "tiD":
		return IntervalDayTime, FormatParams{}, nil
	case "tin":
		return IntervalMonthDayNano, FormatParams{}, nil
	case "+l":
		return List, FormatParams{}, nil
	case "+L":
		return LargeList, FormatParams{}, nil
	case "+vl":
		return ListView, FormatParams{}, nil
	case "+vL":
		return LargeListView, FormatParams{}, nil
	case "+s":
		return Struct, FormatParams{}, nil
	case "+m":
		return Map, FormatParams{}, nil
	case "+r":
		return RunEndEncoded, FormatParams{}, nil
	}

	switch {
	case strings.HasPrefix(format, "tss:"):
		return Timestamp, FormatParams{Unit: Second, TimeZone: format[4:]}, nil
	case strings.HasPrefix(format, "tsm:"):
		return Timestamp, FormatParams{Unit: Millisecond, TimeZone: format[4:]}, nil
	case strings.HasPrefix(format, "tsu:"):
		return Timestamp, FormatParams{Unit: Microsecond, TimeZone: format[4:]}, nil
	case strings.HasPrefix(format, "tsn:"):
		return Timestamp, FormatParams{Unit: Nanosecond, TimeZone: format[4:]}, nil
	case format == "tDs":
		return Duration, FormatParams{Unit: Second}, nil
	case format == "tDm":
		return Duration, FormatParams{Unit: Millisecond}, nil
	case format == "tDu":
		return Duration, FormatParams{Unit: Microsecond}, nil
	case format == "tDn":
		return Duration, FormatParams{Unit: Nanosecond}, nil
	case strings.HasPrefix(format, "+w:"):
		k, err := strconv.Atoi(format[3:])
		if err != nil {
			return Null, FormatParams{}, WrapFormatMismatch(format, "fixed-size-list")
		}
		return FixedSizeList, FormatParams{Width: k}, nil
	case strings.HasPrefix(format, "w:"):
		w, err := strconv.Atoi(format[2:])
		if err != nil {
			return Null, FormatParams{}, WrapFormatMismatch(format, "fixed-width-binary")
		}
		return FixedWidthBinary, FormatParams{Width: w}, nil
	case strings.HasPrefix(format, "d:"):
		return parseDecimalFormat(format)
	case strings.HasPrefix(format, "+ud:"):
		ids, err := parseTypeIDs(format[4:])
		if err != nil {
			return Null, FormatParams{}, err
		}
		return DenseUnion, FormatParams{UnionTypeIDs: ids}, nil
	case strings.HasPrefix(format, "+us:"):
		ids, err := parseTypeIDs(format[4:])
		if err != nil {
			return Null, FormatParams{}, err
		}
		return SparseUnion, FormatParams{UnionTypeIDs: ids}, nil
	}

	return Null, FormatParams{}, WrapFormatMismatch(format, "<any known>")
}

func parseDecimalFormat(format string) (Type, FormatParams, error) {
	rest := format[2:]
	parts := strings.Split(rest, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return Null, FormatParams{}, WrapFormatMismatch(format, "decimal")
	}
	precision, err1 := strconv.Atoi(parts[0])
	scale, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil {
		return Null, FormatParams{}, WrapFormatMismatch(format, "decimal")
	}
	bits := 128
	if len(parts) == 3 {
		bits, err1 = strconv.Atoi(parts[2])
		if err1 != nil {
			return Null, FormatParams{}, WrapFormatMismatch(format, "decimal")
		}
	}
	switch bits {
	case 32, 64, 128, 256:
	default:
		return Null, FormatParams{}, WrapFormatMismatch(format, "decimal")
	}
	return Decimal, FormatParams{Precision: precision, Scale: scale, DecimalBits: bits}, nil
}

func parseTypeIDs(s string) ([]int8, error) {
	if s == "" {
		return nil, nil
	}
	fields := strings.Split(s, ",")
	ids := make([]int8, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil || v < -128 || v > 127 {
			return nil, WrapFormatMismatch(s, "union type-id list")
		}
		ids = append(ids, int8(v))
	}
	return ids, nil
}
