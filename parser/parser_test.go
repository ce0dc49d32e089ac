package parser_test

import (
	"flag"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/gad-lang/cobol/parser"
	"github.com/gad-lang/cobol/parser/source"
	. "github.com/gad-lang/cobol/parser/test_helper"
	"github.com/gad-lang/cobol/picture"
	"github.com/gad-lang/cobol/token"
)

var update = flag.Bool("update", false, "update golden files")

func TestParser_StatementTerminators(t *testing.T) {
	ExpectCodes(t, `ADD 1 TO X ON SIZE ERROR DISPLAY "E".`, []int{5}, ProcedureOnly())
	ExpectNoErrors(t, `ADD 1 TO X ON SIZE ERROR DISPLAY "E" END-ADD.`, ProcedureOnly())
	ExpectNoErrors(t, `ADD 1 TO X.`, ProcedureOnly())

	ExpectNoErrors(t, `IF X = 1 THEN DISPLAY "A" END-IF.`, ProcedureOnly())
	ExpectNoErrors(t, `IF X = 1 DISPLAY "A" ELSE DISPLAY "B" END-IF.`, ProcedureOnly())
	ExpectCodes(t, `IF X = 1 DISPLAY "A".`, []int{5}, ProcedureOnly())
	ExpectCodes(t, `IF X = 1 NEXT SENTENCE END-IF.`, []int{5}, ProcedureOnly())

	ExpectNoErrors(t, `MOVE A TO B DISPLAY B.`, ProcedureOnly())
	ExpectNoErrors(t, `PERFORM UNTIL X > 10 ADD 1 TO X END-PERFORM.`, ProcedureOnly())
	ExpectNoErrors(t, `PERFORM WORK-PARA 3 TIMES.`, ProcedureOnly())
}

func TestParser_PeriodEndsTopLevelSentence(t *testing.T) {
	Parse(t, `IF X = 1 DISPLAY "A". DISPLAY "B".`, func(f *source.File, actual *parser.Result, err error) {
		require.Error(t, err)
		require.Equal(t, []int{5}, actual.Errors.Codes())
		require.Contains(t, actual.Errors[0].Label, "END-IF")
		require.Equal(t, 1, actual.Errors[0].Pos.Line)
		require.Equal(t, 21, actual.Errors[0].Pos.Column)
	}, ProcedureOnly())
}

func TestParser_Evaluate(t *testing.T) {
	ExpectNoErrors(t, `
EVALUATE A ALSO B
  WHEN 1 ALSO 2 DISPLAY "X"
  WHEN 3 ALSO ANY DISPLAY "Y"
  WHEN OTHER DISPLAY "Z"
END-EVALUATE.`, ProcedureOnly())

	ExpectNoErrors(t, `
EVALUATE TRUE
  WHEN X > 1 DISPLAY "X"
END-EVALUATE.`, ProcedureOnly())

	r := ExpectCodes(t, `
EVALUATE A ALSO B
  WHEN 1 ALSO 2 ALSO 3 DISPLAY "X"
  WHEN OTHER DISPLAY "Y"
END-EVALUATE.`, []int{5}, ProcedureOnly())
	require.Equal(t, "Too many selection objects.", r.Errors[0].Msg)

	r = ExpectCodes(t, `
EVALUATE A ALSO B
  WHEN 1 DISPLAY "X"
END-EVALUATE.`, []int{5}, ProcedureOnly())
	require.Equal(t, "Too few selection objects.", r.Errors[0].Msg)
}

func TestParser_CallUsing(t *testing.T) {
	ExpectNoErrors(t, `CALL "PROG" USING BY REFERENCE A BY CONTENT "LIT" BY VALUE 1 END-CALL.`, ProcedureOnly())
	ExpectNoErrors(t, `CALL "PROG" USING A B RETURNING C.`, ProcedureOnly())
	ExpectCodes(t, `CALL "PROG" USING BY A. DISPLAY "B".`, []int{128}, ProcedureOnly())
	ExpectCodes(t, `CALL "PROG" ON EXCEPTION DISPLAY "E".`, []int{5}, ProcedureOnly())
}

func TestParser_IdentifierForms(t *testing.T) {
	ExpectNoErrors(t, `MOVE FUNCTION LENGTH(X) TO Y.`, ProcedureOnly())
	ExpectCodes(t, `CALL "P" RETURNING FUNCTION LENGTH(X).`, []int{15}, ProcedureOnly())
	ExpectCodes(t, `CALL "P" RETURNING ADDRESS OF X.`, []int{15}, ProcedureOnly())
	ExpectNoErrors(t, `SET ADDRESS OF X TO ADDRESS OF Y.`, ProcedureOnly())
}

func TestParser_NestedUnits(t *testing.T) {
	r := ExpectNoErrors(t, `
IDENTIFICATION DIVISION.
PROGRAM-ID. OUTER.
PROCEDURE DIVISION.
    CALL "INNER".
    STOP RUN.
IDENTIFICATION DIVISION.
PROGRAM-ID. INNER IS COMMON.
PROCEDURE DIVISION.
    GOBACK.
END PROGRAM INNER.
END PROGRAM OUTER.
`)
	require.Len(t, r.Units, 2)
	outer := r.Main()
	require.NotNil(t, outer)
	require.Equal(t, "OUTER", outer.Name)
	require.Equal(t, parser.Program, outer.Kind)
	require.Len(t, outer.Nested, 1)

	inner := r.Unit("inner")
	require.NotNil(t, inner)
	require.Same(t, outer, inner.Parent)
	require.Same(t, inner, outer.Nested[0])
	require.True(t, inner.Common)
	require.False(t, outer.Common)
}

func TestParser_EndMarkers(t *testing.T) {
	ExpectNoErrors(t, `
PROGRAM-ID. DEMO.
PROCEDURE DIVISION.
    STOP RUN.
`)

	r := ExpectCodes(t, `
PROGRAM-ID. DEMO.
PROCEDURE DIVISION.
    STOP RUN.
END PROGRAM OTHER-NAME.
`, []int{2})
	require.Contains(t, r.Errors[0].Label, "DEMO")

	ExpectCodes(t, `
PROGRAM-ID. OUTER.
PROCEDURE DIVISION.
    STOP RUN.
PROGRAM-ID. INNER.
PROCEDURE DIVISION.
    GOBACK.
`, []int{25, 25})

	r = ExpectNoErrors(t, `
FUNCTION-ID. TWICE.
DATA DIVISION.
LINKAGE SECTION.
01 ARG PIC 9(4).
01 RES PIC 9(5).
PROCEDURE DIVISION USING ARG RETURNING RES.
    COMPUTE RES = ARG * 2.
    GOBACK.
END FUNCTION TWICE.
`)
	require.Equal(t, parser.Function, r.Main().Kind)
}

func TestParser_UnitHeader(t *testing.T) {
	r := ExpectNoErrors(t, `
PROGRAM-ID. DEMO AS "demo-prog" IS INITIAL PROGRAM.
PROCEDURE DIVISION.
    STOP RUN.
`)
	u := r.Main()
	require.Equal(t, "demo-prog", u.ExternalName)
	require.True(t, u.Initial)
	require.False(t, u.Recursive)

	r = ExpectCodes(t, `
PROGRAM-ID. DEMO IS INITIAL RECURSIVE.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{5})
	require.Equal(t, "Conflicting program attributes.", r.Errors[0].Msg)

	ExpectCodes(t, `
FUNCTION-ID. F1 IS COMMON.
PROCEDURE DIVISION.
    GOBACK.
`, []int{5})

	r = ExpectNoErrors(t, `
PROGRAM-ID. PROTO IS PROTOTYPE.
PROCEDURE DIVISION USING A.
END PROGRAM PROTO.
`)
	require.Equal(t, parser.ProgramPrototype, r.Main().Kind)
	require.True(t, r.Main().IsPrototype())

	ExpectCodes(t, `
PROGRAM-ID. DEMO.
PROCEDURE DIVISION USING.
    STOP RUN.
`, []int{128})
}

func TestParser_IdentificationParagraphs(t *testing.T) {
	Parse(t, `
IDENTIFICATION DIVISION.
PROGRAM-ID. DEMO.
AUTHOR. Somebody, somewhere.
DATE-WRITTEN. JANUARY 2024.
OPTIONS.
PROCEDURE DIVISION.
    STOP RUN.
`, func(f *source.File, actual *parser.Result, err error) {
		// obsolete paragraphs are warnings, the unit is still clean
		require.NoError(t, err)
		require.False(t, actual.HadErrors)
		require.Equal(t, []int{6, 6}, actual.Errors.Codes())
		for _, e := range actual.Errors {
			require.Equal(t, parser.SeverityWarning, e.Severity)
		}
		require.Contains(t, actual.Errors[0].Label, "AUTHOR")
		require.Equal(t, 4, actual.Errors[0].Pos.Line)
		require.Contains(t, actual.Errors[1].Label, "DATE-WRITTEN")
		require.Equal(t, 2, actual.Errors.Count(parser.SeverityWarning))
	})
}

func TestParser_SourceUnitRecovery(t *testing.T) {
	r := ExpectError(t, `
MOVE A TO B.
PROGRAM-ID. DEMO.
PROCEDURE DIVISION.
    STOP RUN.
`)
	require.Equal(t, []int{5}, r.Errors.Codes())
	require.NotNil(t, r.Unit("DEMO"))
}

const environmentProgram = `
IDENTIFICATION DIVISION.
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
SOURCE-COMPUTER. X86.
SPECIAL-NAMES.
    DECIMAL-POINT IS COMMA
    CONSOLE IS CRT-OUT.
REPOSITORY.
    FUNCTION ALL INTRINSIC.
INPUT-OUTPUT SECTION.
FILE-CONTROL.
    SELECT OPTIONAL IN-FILE ASSIGN TO "in.dat"
        ORGANIZATION IS LINE SEQUENTIAL
        ACCESS MODE IS SEQUENTIAL
        FILE STATUS IS WS-STATUS.
PROCEDURE DIVISION.
    STOP RUN.
`

func TestParser_EnvironmentDivision(t *testing.T) {
	r := ExpectNoErrors(t, environmentProgram)
	u := r.Main()
	require.True(t, u.AllIntrinsic)

	require.True(t, u.Names.Exists("crt-out"))
	name, err := u.Names.GetUnique("CRT-OUT")
	require.NoError(t, err)
	require.Equal(t, "CONSOLE", name.Kind)

	file, err := u.Files.GetUnique("in-file")
	require.NoError(t, err)
	require.True(t, file.Optional)
	require.Equal(t, parser.LineSequential, file.Organization)
	require.Equal(t, "SEQUENTIAL", file.Access)
	require.Equal(t, "WS-STATUS", file.Status)
	require.Equal(t, []string{"in.dat"}, file.Assign)
	require.False(t, file.Described)
}

func TestParser_ForAlphanumericForNational(t *testing.T) {
	ExpectNoErrors(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
OBJECT-COMPUTER.
    PROGRAM COLLATING SEQUENCE FOR ALPHANUMERIC IS ASCII-SEQ
        FOR NATIONAL IS NAT-SEQ.
`)

	r := ExpectCodes(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
OBJECT-COMPUTER.
    PROGRAM COLLATING SEQUENCE FOR ALPHANUMERIC IS ASCII-SEQ
        FOR ALPHANUMERIC IS EBCDIC-SEQ.
`, []int{132})
	require.Equal(t, 7, r.Errors[0].Pos.Line)
}

func TestParser_SpecialNamesOrder(t *testing.T) {
	r := ExpectNoErrors(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
SPECIAL-NAMES.
    CLASS HEX-DIGIT IS "0" THRU "9" "A" THRU "F"
    CLASS OCT-DIGIT IS "0" THRU "7"
    DECIMAL-POINT IS COMMA
    SYSOUT IS PRINTER
    SYMBOLIC CHARACTERS BELL IS 8.
PROCEDURE DIVISION.
    STOP RUN.
`)
	u := r.Main()
	for _, name := range []string{"PRINTER", "HEX-DIGIT", "OCT-DIGIT", "BELL"} {
		require.True(t, u.Names.Exists(name), name)
	}

	// ALPHABET comes before CLASS
	r = ExpectCodes(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
SPECIAL-NAMES.
    CLASS HEXA IS "0" THRU "9"
    ALPHABET MY-ALPHA IS NATIVE.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{5})
	require.Equal(t, 7, r.Errors[0].Pos.Line)
	require.Contains(t, r.Errors[0].Label, "ALPHABET")
	require.NotEmpty(t, r.Errors[0].Note)

	// CRT STATUS is written once
	ExpectCodes(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
SPECIAL-NAMES.
    CRT STATUS IS S1
    CRT STATUS IS S2.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{5})

	// DECIMAL-POINT comes before the device names
	ExpectCodes(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
SPECIAL-NAMES.
    CONSOLE IS CRT-OUT
    DECIMAL-POINT IS COMMA.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{5})
}

func TestParser_Repository(t *testing.T) {
	r := ExpectNoErrors(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
REPOSITORY.
    CLASS ACCOUNT AS "com.example.Account"
    FUNCTION TRIM UPPER-CASE INTRINSIC
    FUNCTION TWICE.
PROCEDURE DIVISION.
    STOP RUN.
`)
	u := r.Main()
	require.False(t, u.AllIntrinsic)

	account, err := u.Repository.GetUnique("ACCOUNT")
	require.NoError(t, err)
	require.Equal(t, "CLASS", account.Kind)
	require.Equal(t, "com.example.Account", account.ExternalName)

	trim, err := u.Repository.GetUnique("TRIM")
	require.NoError(t, err)
	require.True(t, trim.Intrinsic)
	require.True(t, u.Repository.Exists("UPPER-CASE"))

	twice, err := u.Repository.GetUnique("TWICE")
	require.NoError(t, err)
	require.False(t, twice.Intrinsic)

	ExpectCodes(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
CONFIGURATION SECTION.
REPOSITORY.
    CLASS ACCOUNT EXPANDS BASE USING.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{105})
}

const payrollProgram = `
IDENTIFICATION DIVISION.
PROGRAM-ID. PAYROLL-RUN.
ENVIRONMENT DIVISION.
INPUT-OUTPUT SECTION.
FILE-CONTROL.
    SELECT Payroll ASSIGN TO "pay.dat".
    SELECT PAYROLL ASSIGN TO "pay2.dat".
PROCEDURE DIVISION.
    STOP RUN.
`

func TestParser_DuplicateFileConnector(t *testing.T) {
	r := ExpectCodes(t, payrollProgram, []int{30})
	require.Equal(t, 8, r.Errors[0].Pos.Line)

	files, err := r.Main().Files.GetAll("payroll")
	require.NoError(t, err)
	require.Len(t, files, 2)

	// a resolution pass over the same tokens does not report it again
	p := newParser(t, payrollProgram, nil)
	first, err := p.ParseFile()
	require.Error(t, err)
	second, err := p.ResolutionPass(first)
	require.NoError(t, err)
	require.Empty(t, second.Errors)
	require.Same(t, first.Main(), second.Main())
}

func TestParser_FileDescriptionConnector(t *testing.T) {
	// the connector is checked once, on the pass that registers entries
	p := newParser(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
INPUT-OUTPUT SECTION.
FILE-CONTROL.
    SELECT PAY-FILE ASSIGN TO "pay.dat".
DATA DIVISION.
FILE SECTION.
FD NO-SUCH-FILE.
01 NO-REC PIC X.
`, nil)
	first, err := p.ParseFile()
	require.Error(t, err)
	require.Equal(t, []int{31}, first.Errors.Codes())
	require.Equal(t, 9, first.Errors[0].Pos.Line)

	second, _ := p.ResolutionPass(first)
	require.NotContains(t, second.Errors.Codes(), 31)

	// a file selected twice is reported once and can still be described
	ExpectCodes(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
INPUT-OUTPUT SECTION.
FILE-CONTROL.
    SELECT PAY-FILE ASSIGN TO "pay.dat".
    SELECT PAY-FILE ASSIGN TO "pay2.dat".
DATA DIVISION.
FILE SECTION.
FD PAY-FILE.
01 PAY-REC PIC X.
`, []int{30})
}

func TestParser_FileSection(t *testing.T) {
	r := ExpectCodes(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
INPUT-OUTPUT SECTION.
FILE-CONTROL.
    SELECT PAY-FILE ASSIGN TO "pay.dat".
    SELECT SORT-FILE ASSIGN TO "sort.tmp".
DATA DIVISION.
FILE SECTION.
FD PAY-FILE
    RECORD CONTAINS 80 CHARACTERS
    BLOCK CONTAINS 10 RECORDS.
01 PAY-REC PIC X(80).
SD SORT-FILE.
01 SORT-REC.
   05 SORT-KEY PIC 9(5).
FD PAY-FILE.
01 OTHER-REC PIC X.
FD NO-SUCH-FILE.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{30, 31})
	u := r.Main()

	pay, err := u.Files.GetUnique("PAY-FILE")
	require.NoError(t, err)
	require.True(t, pay.Described)
	require.False(t, pay.Sort)

	sortFile, err := u.Files.GetUnique("SORT-FILE")
	require.NoError(t, err)
	require.True(t, sortFile.Described)
	require.True(t, sortFile.Sort)

	rec, err := u.Data.GetUnique("PAY-REC")
	require.NoError(t, err)
	require.Equal(t, "PAY-FILE", rec.File)
	require.Equal(t, parser.FileSection, rec.Section)

	key, err := u.Data.GetUnique("SORT-KEY")
	require.NoError(t, err)
	require.Equal(t, "SORT-REC", key.Parent.Token.Value)
	require.Equal(t, "SORT-FILE", key.File)
}

const dataProgram = `
IDENTIFICATION DIVISION.
PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-NAME PIC X(10).
01 WS-COUNT PIC S9(5)V9(2) VALUE 0.
01 WS-TAG USAGE MESSAGE-TAG.
01 WS-PTR USAGE POINTER.
01 WS-FLAG PIC X VALUE "N".
   88 WS-DONE VALUE "Y".
   88 WS-LETTER VALUES "A" THRU "Z".
01 WS-TABLE.
   05 WS-ROW OCCURS 10 TIMES INDEXED BY WS-IDX.
      10 WS-CELL PIC 9(3) COMP.
   05 WS-TOTAL PIC 9(7) COMP-3.
77 WS-LIMIT PIC 9(4) VALUE 100.
LOCAL-STORAGE SECTION.
01 LS-TEMP PIC X(4).
PROCEDURE DIVISION.
    SET WS-IDX UP BY 1.
    SET WS-PTR TO NULL.
    SET WS-TAG TO NULL.
    SET WS-DONE TO TRUE.
    MOVE WS-COUNT TO WS-NAME.
    STOP RUN.
`

func TestParser_DataDivision(t *testing.T) {
	r := ExpectNoErrors(t, dataProgram)
	u := r.Main()

	name, err := u.Data.GetUnique("WS-NAME")
	require.NoError(t, err)
	require.Equal(t, 1, name.Level)
	require.Equal(t, parser.WorkingStorageSection, name.Section)
	require.Equal(t, "X(10)", name.Picture)
	require.Equal(t, picture.Alphanumeric, name.Category)
	require.Equal(t, 10, name.Size)
	require.Nil(t, name.Parent)

	count, err := u.Data.GetUnique("WS-COUNT")
	require.NoError(t, err)
	require.Equal(t, picture.Numeric, count.Category)
	require.Equal(t, 7, count.Size)
	v, err := count.NumericValue()
	require.NoError(t, err)
	require.True(t, v.IsZero())

	tag, err := u.Data.GetUnique("WS-TAG")
	require.NoError(t, err)
	require.True(t, tag.IsMessageTag())

	ptr, err := u.Data.GetUnique("WS-PTR")
	require.NoError(t, err)
	require.True(t, ptr.IsPointer())

	done, err := u.Data.GetUnique("WS-DONE")
	require.NoError(t, err)
	require.Equal(t, 88, done.Level)
	require.Equal(t, "WS-FLAG", done.Parent.Token.Value)

	letter, err := u.Data.GetUnique("WS-LETTER")
	require.NoError(t, err)
	require.Len(t, letter.Value, 2)
	require.Equal(t, "WS-FLAG", letter.Parent.Token.Value)

	row, err := u.Data.GetUnique("WS-ROW")
	require.NoError(t, err)
	require.True(t, row.Occurs.Equal(decimal.NewFromInt(10)))
	require.Equal(t, "WS-TABLE", row.Parent.Token.Value)

	idx, err := u.Data.GetUnique("WS-IDX")
	require.NoError(t, err)
	require.True(t, idx.IsIndex())
	require.Same(t, row, idx.Parent)

	cell, err := u.Data.GetUnique("WS-CELL")
	require.NoError(t, err)
	require.Equal(t, "COMPUTATIONAL", cell.Usage)
	require.Same(t, row, cell.Parent)

	total, err := u.Data.GetUnique("WS-TOTAL")
	require.NoError(t, err)
	require.Equal(t, "COMPUTATIONAL-3", total.Usage)
	require.Equal(t, "WS-TABLE", total.Parent.Token.Value)

	limit, err := u.Data.GetUnique("WS-LIMIT")
	require.NoError(t, err)
	require.Equal(t, 77, limit.Level)
	require.Nil(t, limit.Parent)

	temp, err := u.Data.GetUnique("LS-TEMP")
	require.NoError(t, err)
	require.Equal(t, parser.LocalStorageSection, temp.Section)
}

func TestParser_DataDivisionDiagnostics(t *testing.T) {
	r := ExpectCodes(t, `
PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-BAD PIC 9V9V9.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{20})
	require.Equal(t, "Invalid picture string: 9V9V9", r.Errors[0].Label)
	require.Equal(t, picture.NoteDecimalOnce, r.Errors[0].Note)

	// one diagnostic per broken rule
	r = ExpectCodes(t, `
PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-BAD PIC 9S9V9V.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{20, 20})
	require.Equal(t, picture.NoteSignFirst, r.Errors[0].Note)
	require.Equal(t, picture.NoteDecimalOnce, r.Errors[1].Note)

	// nested items may repeat a name, root items may not
	ExpectCodes(t, `
PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-A.
   05 WS-FIELD PIC X.
01 WS-B.
   05 WS-FIELD PIC X.
01 WS-A PIC 9.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{30})

	ExpectCodes(t, `
PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-FLAG PIC X.
   88 WS-ON.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{25})

	ExpectCodes(t, `
PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
55 WS-ODD PIC X.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{5})

	r = ExpectCodes(t, `
PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-A PIC X BOGUS CLAUSE.
01 WS-B PIC X.
PROCEDURE DIVISION.
    STOP RUN.
`, []int{5})
	require.True(t, r.Main().Data.Exists("WS-B"))
}

func TestParser_SetUpByNonNumeric(t *testing.T) {
	r := ExpectCodes(t, `
PROGRAM-ID. DEMO.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-NAME PIC X(10).
01 WS-NUM PIC 9(4).
PROCEDURE DIVISION.
    SET WS-NUM UP BY 1.
    SET WS-NAME UP BY 1.
    SET ADDRESS OF WS-NAME DOWN BY 1.
    STOP RUN.
`, []int{5, 5})
	require.Equal(t, "Unexpected UP.", r.Errors[0].Msg)
	require.Equal(t, "Unexpected DOWN.", r.Errors[1].Msg)
}

const proceduresProgram = `
PROGRAM-ID. DEMO.
PROCEDURE DIVISION.
MAIN-PARA.
    PERFORM WORK-PARA.
    GO TO MISSING-PARA.
WORK-PARA.
    EXIT.
`

func TestParser_ResolutionPass(t *testing.T) {
	p := newParser(t, proceduresProgram, nil)
	first, err := p.ParseFile()
	require.NoError(t, err)

	u := first.Main()
	require.True(t, u.Procedures.Exists("MAIN-PARA"))
	require.True(t, u.Procedures.Exists("WORK-PARA"))
	require.False(t, u.Procedures.Exists("MISSING-PARA"))

	second, err := p.ResolutionPass(first)
	require.Error(t, err)
	require.Equal(t, []int{31}, second.Errors.Codes())
	require.Contains(t, second.Errors[0].Label, "MISSING-PARA")
	require.Equal(t, 6, second.Errors[0].Pos.Line)

	// nothing is registered twice
	all, err := u.Procedures.GetAll("WORK-PARA")
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestParser_SectionsAndAnnotations(t *testing.T) {
	p := newParser(t, `
PROGRAM-ID. DEMO.
ENVIRONMENT DIVISION.
INPUT-OUTPUT SECTION.
FILE-CONTROL.
    SELECT IN-FILE ASSIGN TO "in.dat".
PROCEDURE DIVISION.
DECLARATIVES.
ERR-HANDLER SECTION.
    USE AFTER ERROR PROCEDURE ON IN-FILE.
ERR-PARA.
    DISPLAY "ERR".
END DECLARATIVES.
MAIN-LOGIC SECTION.
START-UP.
    DISPLAY "A".
    STOP RUN.
`, nil)
	res, err := p.ParseFile()
	require.NoError(t, err)

	annotated := map[string]token.Context{}
	for i, c := range res.Annotations {
		annotated[p.Tokens[i].Value] = c
	}
	require.Equal(t, map[string]token.Context{
		"ERR-HANDLER": token.IsSection,
		"USE":         token.IsDeclarative,
		"ERR-PARA":    token.IsParagraph,
		"MAIN-LOGIC":  token.IsSection,
		"START-UP":    token.IsParagraph,
	}, annotated)

	u := res.Main()
	handler, err := u.Procedures.GetUnique("ERR-HANDLER")
	require.NoError(t, err)
	require.True(t, handler.Section)
	require.True(t, handler.Declarative)

	errPara, err := u.Procedures.GetUnique("ERR-PARA")
	require.NoError(t, err)
	require.Equal(t, "ERR-HANDLER", errPara.Owner)
	require.True(t, errPara.Declarative)

	start, err := u.Procedures.GetUnique("START-UP")
	require.NoError(t, err)
	require.False(t, start.Section)
	require.Equal(t, "MAIN-LOGIC", start.Owner)
	require.False(t, start.Declarative)
}

func TestParser_LexicalErrors(t *testing.T) {
	r := ExpectError(t, `DISPLAY "A" @.`, ProcedureOnly())
	require.Contains(t, r.Errors.Codes(), 1)
}

func TestParser_Golden(t *testing.T) {
	Parse(t, `IDENTIFICATION DIVISION.
PROGRAM-ID. GOLDEN.
DATA DIVISION.
WORKING-STORAGE SECTION.
01 WS-BAD PIC 9V9V9.
01 WS-BAD PIC X.
PROCEDURE DIVISION.
    IF WS-BAD = 1 DISPLAY "A".
    STOP RUN.
`, func(f *source.File, actual *parser.Result, err error) {
		require.Error(t, err)
		Golden(t, "diagnostics.golden", Diagnostics(actual), *update)
	})
}
