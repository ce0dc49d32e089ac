package token

import "strings"

var statements = []string{
	"ACCEPT", "ADD", "ALLOCATE", "CALL", "CANCEL", "CLOSE", "COMMIT",
	"COMPUTE", "CONTINUE", "DELETE", "DISPLAY", "DIVIDE", "EVALUATE",
	"EXIT", "FREE", "GENERATE", "GO", "GOBACK", "IF", "INITIALIZE",
	"INITIATE", "INSPECT", "INVOKE", "MERGE", "MOVE", "MULTIPLY", "OPEN",
	"PERFORM", "RAISE", "READ", "RECEIVE", "RELEASE", "RESUME", "RETURN",
	"REWRITE", "ROLLBACK", "SEARCH", "SEND", "SET", "SORT", "START",
	"STOP", "STRING", "SUBTRACT", "SUPPRESS", "TERMINATE", "UNLOCK",
	"UNSTRING", "VALIDATE", "WRITE",
}

var clauses = []string{
	"ACCESS", "ALTERNATE", "COLLATING", "FILE", "STATUS", "LOCK",
	"ORGANIZATION", "INDEXED", "RELATIVE", "LINE", "RECORD", "SEQUENTIAL",
	"RESERVE", "SHARING",
}

var terminators = []string{
	"END-ACCEPT", "END-ADD", "END-CALL", "END-COMPUTE", "END-DELETE",
	"END-DISPLAY", "END-DIVIDE", "END-EVALUATE", "END-IF", "END-INVOKE",
	"END-MULTIPLY", "END-PERFORM", "END-READ", "END-RECEIVE", "END-RETURN",
	"END-REWRITE", "END-SEARCH", "END-SEND", "END-START", "END-STRING",
	"END-SUBTRACT", "END-UNSTRING", "END-WRITE",
}

var figuratives = []string{
	"ZERO", "ZEROS", "ZEROES", "SPACE", "SPACES", "HIGH-VALUE",
	"HIGH-VALUES", "LOW-VALUE", "LOW-VALUES", "QUOTE", "QUOTES",
}

var devices = []string{
	"STANDARD-INPUT", "STANDARD-OUTPUT", "STANDARD-ERROR", "COMMAND-LINE",
	"SYSIN", "SYSOUT", "SYSERR", "CONSOLE",
}

var reserved = []string{
	"ADDRESS", "ADVANCING", "AFTER", "ALL", "ALPHABET", "ALPHABETIC",
	"ALPHABETIC-LOWER", "ALPHABETIC-UPPER", "ALPHANUMERIC",
	"ALPHANUMERIC-EDITED", "ALSO", "AND", "ANY", "ANYCASE", "APPLY", "ARE",
	"AREA", "AREAS", "AS", "ASCENDING", "ASSIGN", "AT", "AUTOMATIC",
	"BACKWARD", "BASED", "BEFORE", "BINARY", "BINARY-CHAR", "BINARY-DOUBLE",
	"BINARY-LONG", "BINARY-SHORT", "BLANK", "BLOCK", "BOOLEAN", "BY",
	"CHARACTER", "CHARACTERS", "CLASS", "CLASSIFICATION", "COL", "COLUMN",
	"COMMA", "COMMON", "COMP", "COMP-1", "COMP-2", "COMP-3", "COMP-4",
	"COMP-5", "COMPUTATIONAL", "COMPUTATIONAL-1", "COMPUTATIONAL-2",
	"COMPUTATIONAL-3", "COMPUTATIONAL-4", "COMPUTATIONAL-5", "CONDITION",
	"CONFIGURATION", "CONTAINS", "CONTENT", "CONVERTING", "CORR",
	"CORRESPONDING", "COUNT", "CRT", "CURRENCY", "CURSOR", "CYCLE", "DATA",
	"DATA-POINTER", "DATE", "DAY", "DAY-OF-WEEK", "DECIMAL-POINT",
	"DECLARATIVES", "DEFAULT", "DELIMITED", "DELIMITER", "DEPENDING",
	"DESCENDING", "DIVISION", "DOWN", "DUPLICATES", "DYNAMIC", "EC", "ELSE",
	"END", "END-OF-PAGE", "ENVIRONMENT", "EO", "EOP", "EQUAL", "ERROR",
	"EXCEPTION", "EXCEPTION-OBJECT", "EXPANDS", "EXTEND", "EXTERNAL",
	"FACTORY", "FALSE", "FD", "FILE-CONTROL", "FILLER", "FINALLY", "FIRST",
	"FLOAT-LONG", "FLOAT-SHORT", "FOR", "FOREVER", "FROM", "FUNCTION",
	"FUNCTION-ID", "FUNCTION-POINTER", "GIVING", "GLOBAL", "GREATER", "I-O",
	"I-O-CONTROL", "IDENTIFICATION", "IGNORING", "IN", "INDEX", "INITIAL",
	"INITIALIZED", "INPUT", "INPUT-OUTPUT", "INTERFACE", "INTO",
	"INTRINSIC", "INVALID", "IO", "IS", "JUST", "JUSTIFIED", "KEY",
	"LAST", "LC_ALL", "LEADING", "LEFT", "LENGTH", "LESS", "LIMIT",
	"LINAGE-COUNTER", "LINE-COUNTER", "LINES", "LINKAGE", "LOCAL-STORAGE",
	"LOCALE", "LOCATION", "MANUAL", "MESSAGE", "MESSAGE-TAG", "METHOD",
	"METHOD-ID", "MODE", "MULTIPLE", "NATIONAL", "NATIONAL-EDITED",
	"NATIVE", "NEGATIVE", "NESTED", "NEXT", "NO", "NORMAL", "NOT", "NULL",
	"NUMERIC", "NUMERIC-EDITED", "OBJECT", "OBJECT-COMPUTER",
	"OBJECT-REFERENCE", "OCCURS", "OF", "OFF", "OMITTED", "ON", "ONLY",
	"OPTIONAL", "OR", "ORDER", "OTHER", "OUTPUT", "OVERFLOW", "OVERRIDE",
	"PACKED-DECIMAL", "PAGE", "PAGE-COUNTER", "PARAGRAPH", "PIC", "PICTURE",
	"POINTER", "POSITIVE", "PREFIXED", "PREVIOUS", "PRINTING", "PROCEDURE",
	"PROCEDURE-POINTER", "PROGRAM", "PROGRAM-ID", "PROGRAM-POINTER",
	"PROPERTY", "PROTOTYPE", "RAISING", "RANDOM", "RECEIVED", "RECORDS",
	"RECURSIVE", "REDEFINES", "REEL", "REFERENCE", "REMAINDER", "REMOVAL",
	"RENAMES", "REPLACING", "REPORTING", "REPOSITORY", "RETRY", "RETURNING",
	"REWIND", "RIGHT", "ROUNDED", "RUN", "SAME", "SD", "SECONDS", "SECTION",
	"SELECT", "SELF", "SENTENCE", "SEPARATE", "SEQUENCE", "SHORT", "SIGN",
	"SIGNED", "SIZE", "SORT-MERGE", "SOURCE", "SOURCE-COMPUTER",
	"SPECIAL-NAMES", "STANDARD", "STANDARD-1", "STANDARD-2", "STATEMENT",
	"STRUCTURE", "SYMBOL", "SYMBOLIC", "SYNC", "SYNCHRONIZED",
	"SYSTEM-DEFAULT", "TALLYING", "TEST", "THAN", "THEN", "THROUGH", "THRU",
	"TIME", "TIMES", "TO", "TRAILING", "TRUE", "TYPEDEF", "UCS-4", "UNIT",
	"UNIVERSAL", "UNSIGNED", "UNTIL", "UP", "UPON", "USAGE", "USE",
	"USER-DEFAULT", "USING", "UTF-16", "UTF-32", "UTF-8", "VALUE", "VALUES",
	"VARYING", "WHEN", "WITH", "WORKING-STORAGE", "YYYYDDD", "YYYYMMDD",
	"AUTHOR", "BOTTOM", "CLASS-ID", "CODE-SET", "CONSTANT", "DATE-COMPILED",
	"DATE-WRITTEN", "FOOTING", "INSTALLATION", "INTERFACE-ID", "LC_COLLATE",
	"LC_CTYPE", "LC_MESSAGES", "LC_MONETARY", "LC_NUMERIC", "LC_TIME",
	"LINAGE", "OPTIONS", "REMARKS", "REPORT", "REPORTS", "SECURITY", "TOP",
	"TYPE",
}

var intrinsics = []string{
	"ABS", "ACOS", "ANNUITY", "ASIN", "ATAN", "BOOLEAN-OF-INTEGER",
	"BYTE-LENGTH", "CHAR", "CHAR-NATIONAL", "COMBINED-DATETIME",
	"CONCATENATE", "COS", "CURRENT-DATE", "DATE-OF-INTEGER",
	"DATE-TO-YYYYMMDD", "DAY-OF-INTEGER", "DAY-TO-YYYYDDD", "DISPLAY-OF",
	"E", "EXCEPTION-FILE", "EXCEPTION-LOCATION", "EXCEPTION-STATEMENT",
	"EXCEPTION-STATUS", "EXP", "EXP10", "FACTORIAL",
	"FORMATTED-CURRENT-DATE", "FORMATTED-DATE", "FORMATTED-DATETIME",
	"FORMATTED-TIME", "FRACTION-PART", "HIGHEST-ALGEBRAIC", "INTEGER",
	"INTEGER-OF-BOOLEAN", "INTEGER-OF-DATE", "INTEGER-OF-DAY",
	"INTEGER-OF-FORMATTED-DATE", "INTEGER-PART", "LENGTH",
	"LOCALE-COMPARE", "LOCALE-DATE", "LOCALE-TIME",
	"LOCALE-TIME-FROM-SECONDS", "LOG", "LOG10", "LOWER-CASE",
	"LOWEST-ALGEBRAIC", "MAX", "MEAN", "MEDIAN", "MIDRANGE", "MIN", "MOD",
	"MODULE-NAME", "NATIONAL-OF", "NUMVAL", "NUMVAL-C", "NUMVAL-F", "ORD",
	"ORD-MAX", "ORD-MIN", "PI", "PRESENT-VALUE", "RANDOM", "RANGE", "REM",
	"REVERSE", "SECONDS-FROM-FORMATTED-TIME", "SECONDS-PAST-MIDNIGHT",
	"SIGN", "SIN", "SMALLEST-ALGEBRAIC", "SQRT", "STANDARD-COMPARE",
	"STANDARD-DEVIATION", "SUM", "TAN", "TEST-DATE-YYYYMMDD",
	"TEST-DAY-YYYYDDD", "TEST-FORMATTED-DATETIME", "TEST-NUMVAL",
	"TEST-NUMVAL-C", "TEST-NUMVAL-F", "TRIM", "UPPER-CASE", "VARIANCE",
	"WHEN-COMPILED", "YEAR-TO-YYYY",
}

type entry struct {
	kind    Kind
	context Context
}

var (
	words         map[string]entry
	intrinsicsSet map[string]bool
)

func init() {
	words = make(map[string]entry, len(reserved)+len(statements)+len(clauses)+len(terminators))
	for _, w := range reserved {
		words[w] = entry{Reserved, NoContext}
	}
	for _, w := range clauses {
		words[w] = entry{Reserved, IsClause}
	}
	for _, w := range statements {
		words[w] = entry{Reserved, IsStatement}
	}
	for _, w := range terminators {
		words[w] = entry{Reserved, IsScopeTerminator}
	}
	for _, w := range figuratives {
		words[w] = entry{Figurative, NoContext}
	}
	for _, w := range devices {
		words[w] = entry{Device, NoContext}
	}
	intrinsicsSet = make(map[string]bool, len(intrinsics))
	for _, w := range intrinsics {
		intrinsicsSet[w] = true
	}
}

// Lookup maps a word to its kind and context. Words which are not reserved
// are identifiers.
func Lookup(word string) (Kind, Context) {
	if e, ok := words[strings.ToUpper(word)]; ok {
		return e.kind, e.context
	}
	return Identifier, NoContext
}

// IsReserved reports whether word is a reserved word of the language.
func IsReserved(word string) bool {
	_, ok := words[strings.ToUpper(word)]
	return ok
}

// IsIntrinsic reports whether word names an intrinsic function. Intrinsic
// function names are only reserved after the FUNCTION keyword or inside a
// repository paragraph.
func IsIntrinsic(word string) bool {
	return intrinsicsSet[strings.ToUpper(word)]
}
