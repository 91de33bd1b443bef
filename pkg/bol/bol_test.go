package bol

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"iso date", "2024-03-05", "05-MAR-24"},
		{"rfc3339", "2023-12-31T22:10:00Z", "31-DEC-23"},
		{"datetime", "2025-07-01 08:00:00", "01-JUL-25"},
		{"day first", "09/11/2026", "09-NOV-26"},
		{"already formatted", "14-Feb-2024", "14-FEB-24"},
		{"padded", "  2024-01-02 ", "02-JAN-24"},
		{"empty", "", ""},
		{"garbage", "next tuesday", ""},
		{"impossible date", "2024-02-30", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDate(tt.input))
		})
	}
}

func TestSumField(t *testing.T) {
	var fromJSON []Record
	require.NoError(t, json.Unmarshal([]byte(`[{"gross_weight": 1000.5}, {"gross_weight": "2,000"}]`), &fromJSON))

	tests := []struct {
		name     string
		records  []Record
		field    string
		expected float64
	}{
		{"nil list", nil, FieldGrossWeight, 0},
		{"numbers", []Record{{"packages": 10}, {"packages": 5.5}}, FieldPackages, 15.5},
		{"strings and junk", []Record{{"volume": "1.25"}, {"volume": "n/a"}, {"volume": nil}, {}}, FieldVolume, 1.25},
		{"json decoded", fromJSON, FieldGrossWeight, 3000.5},
		{"json number", []Record{{"packages": json.Number("7")}}, FieldPackages, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SumField(tt.records, tt.field), 1e-9)
		})
	}
}

func TestJoinContainerMeta(t *testing.T) {
	rows := []Record{
		{FieldContainerNo: "MSCU 123456-7"},
		{FieldContainerNo: "TGHU7654321", FieldSealNo: "OWN-SEAL"},
		{FieldContainerNo: "NOMATCH0000"},
	}
	meta := []Record{
		{FieldContainerNo: "mscu1234567", FieldSealNo: "S-1", FieldTypeName: "40' HIGH CUBE"},
		{FieldContainerNo: "TGHU7654321", FieldSealNo: "S-2", FieldContainerType: "20GP"},
	}

	got := JoinContainerMeta(rows, meta)
	require.Len(t, got, 3)

	assert.Equal(t, "S-1", got[0].Str(FieldSealNo))
	assert.Equal(t, "40' HIGH CUBE", got[0].Str(FieldTypeName))
	assert.Equal(t, "OWN-SEAL", got[1].Str(FieldSealNo), "row value wins over master data")
	assert.Equal(t, "20GP", got[1].Str(FieldTypeName))
	assert.Equal(t, "", got[2].Str(FieldSealNo))
	assert.Equal(t, "", got[2].Str(FieldTypeName))

	_, touched := rows[0][FieldSealNo]
	assert.False(t, touched, "input rows must not be modified")
}

func TestBuildEntries(t *testing.T) {
	t.Run("containers omit absent fields", func(t *testing.T) {
		entries := BuildEntries([]Record{
			{FieldContainerNo: "abcu1111111", FieldPackages: 100, FieldPackageType: "cartons", FieldGrossWeight: 12500},
			{FieldContainerNo: "ABCU2222222"},
		}, nil, []Record{{FieldContainerNo: "ABCU1111111", FieldSealNo: "SL9", FieldTypeName: "20' DRY"}})

		require.Len(t, entries, 2)
		assert.Equal(t, "ABCU1111111", entries[0].Lines[0])
		assert.Equal(t, "20' DRY", entries[0].Lines[1])
		assert.Equal(t, "SEAL: SL9", entries[0].Lines[2])
		assert.Equal(t, "100 CARTONS", entries[0].Lines[3])
		assert.Contains(t, entries[0].Lines[4], "12,500")
		assert.Len(t, entries[0].Lines, 5)
		assert.Equal(t, []string{"ABCU2222222"}, entries[1].Lines)
	})

	t.Run("cargo when no containers", func(t *testing.T) {
		entries := BuildEntries(nil, []Record{{FieldCommodity: "MACHINE PARTS", FieldPackages: "3"}}, nil)
		require.Len(t, entries, 1)
		assert.Equal(t, []string{"MACHINE PARTS", "3"}, entries[0].Lines)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, BuildEntries(nil, nil, nil))
	})
}

func TestContainerEntryHeight(t *testing.T) {
	e := ContainerEntry{Lines: []string{"a", "b", "c", "d", "e", "f"}}
	assert.Equal(t, 66.0, e.Height(10, 6))
	assert.Equal(t, 6.0, ContainerEntry{}.Height(10, 6))
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "  SAID TO CONTAIN \n\n 100 CARTONS  ", "SAID TO CONTAIN\n100 CARTONS"},
		{"paragraphs", "<p>FROZEN FISH</p><p>HS CODE 0303</p>", "FROZEN FISH\nHS CODE 0303"},
		{"breaks and entities", "TOYS &amp; GAMES<br>NET WT 10 KGS", "TOYS & GAMES\nNET WT 10 KGS"},
		{"inline markup", "<b>BOLD</b> TEXT", "BOLD TEXT"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, PlainText(tt.input))
		})
	}
}

func TestResolveBranch(t *testing.T) {
	defaults := BranchInfo{Name: "HQ FORWARDING", Address: "1 HARBOUR RD", City: "SINGAPORE", TaxIDs: []string{"GST 123"}}

	t.Run("nil branch uses defaults", func(t *testing.T) {
		got := ResolveBranch(nil, defaults)
		assert.Equal(t, defaults.Name, got.Name)
		assert.Equal(t, defaults.TaxIDs, got.TaxIDs)
	})

	t.Run("partial branch", func(t *testing.T) {
		got := ResolveBranch(&BranchInfo{Name: "PENANG OFFICE"}, defaults)
		assert.Equal(t, "PENANG OFFICE", got.Name)
		assert.Equal(t, "1 HARBOUR RD", got.Address)
		assert.Nil(t, got.Logo)
	})
}

func TestVesselVoyage(t *testing.T) {
	assert.Equal(t, "EVER GIVEN V.041E", VesselVoyage("EVER  GIVEN", "041E"))
	assert.Equal(t, "EVER GIVEN", VesselVoyage("EVER GIVEN", ""))
	assert.Equal(t, "041E", VesselVoyage("", "041E"))
	assert.Equal(t, "", VesselVoyage("", ""))
}

func TestBuild(t *testing.T) {
	t.Run("missing house", func(t *testing.T) {
		_, err := Build(DocumentInput{}, Options{})
		assert.ErrorIs(t, err, ErrMissingHouse)
	})

	t.Run("fallbacks", func(t *testing.T) {
		m, err := Build(DocumentInput{
			Job:   Job{JobNo: "J-1", PortOfLoading: "PORT KLANG", Vessel: "MAERSK KIEL", Voyage: "22W", ETD: "2024-03-05"},
			House: &House{HouseNo: "HBL-9", Shipper: Party{Name: "ACME", Address: "LINE 1\n\nLINE 2"}},
		}, Options{})
		require.NoError(t, err)

		assert.Equal(t, DefaultTitle, m.Title)
		assert.Equal(t, DefaultFreightPayableAt, m.FreightPayableAt)
		assert.Equal(t, DefaultFreightTerm, m.FreightTerm)
		assert.Equal(t, DefaultOriginals, m.Originals)
		assert.Equal(t, "PORT KLANG", m.PortOfLoading)
		assert.Equal(t, "PORT KLANG", m.PlaceOfIssue)
		assert.Equal(t, "MAERSK KIEL V.22W", m.VesselVoyage)
		assert.Equal(t, "05-MAR-24", m.OnBoardDate)
		assert.Equal(t, []string{"ACME", "LINE 1", "LINE 2"}, m.Shipper)
		assert.Empty(t, m.Consignee)
		assert.Equal(t, "", m.Origin)
		assert.Equal(t, "", m.GrossWeight)
		assert.Empty(t, m.Entries)
	})

	t.Run("house overrides job and totals", func(t *testing.T) {
		m, err := Build(DocumentInput{
			Job:     Job{PortOfDischarge: "ROTTERDAM"},
			House:   &House{PortOfDischarge: "HAMBURG", FreightTerm: "collect", Cargo: []Record{{FieldPackages: 10, FieldGrossWeight: "1,000.5"}, {FieldPackages: "x"}}},
			Country: &Country{Code: "MY", Name: "Malaysia"},
		}, Options{})
		require.NoError(t, err)

		assert.Equal(t, "HAMBURG", m.PortOfDischarge)
		assert.Equal(t, "COLLECT", m.FreightTerm)
		assert.Equal(t, "MALAYSIA", m.Origin)
		assert.Equal(t, "10", m.TotalPackages)
		assert.Contains(t, m.GrossWeight, "1,000.5")
		assert.Len(t, m.Entries, 2)
	})
}

func TestBuildLogsDataGaps(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	_, err := Build(DocumentInput{
		House: &House{
			HouseNo:     "HBL-3",
			IssueDate:   "someday",
			FreightTerm: "PREPAID",
			Containers:  []Record{{FieldContainerNo: "MSCU1234567"}, {FieldContainerNo: "NOMATCH0000"}},
		},
		ContainerMeta: []Record{{FieldContainerNo: "MSCU1234567", FieldSealNo: "S-1"}},
	}, Options{Logger: log})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "container=NOMATCH0000")
	assert.NotContains(t, out, "container=MSCU1234567")
	assert.Contains(t, out, "field=freight_payable_at")
	assert.Contains(t, out, "field=originals")
	assert.NotContains(t, out, "field=freight_term")
	assert.Contains(t, out, "field=issue_date")
}

func TestRecordIntegerTypes(t *testing.T) {
	tests := []struct {
		name  string
		value any
		str   string
		num   float64
	}{
		{"int", 7, "7", 7},
		{"int32", int32(42), "42", 42},
		{"int64", int64(-3), "-3", -3},
		{"uint", uint(5), "5", 5},
		{"uint32", uint32(9), "9", 9},
		{"uint64", uint64(11), "11", 11},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Record{FieldContainerNo: tt.value}
			assert.True(t, r.Has(FieldContainerNo))
			assert.Equal(t, tt.str, r.Str(FieldContainerNo))
			assert.Equal(t, tt.num, r.Num(FieldContainerNo))
		})
	}

	t.Run("int32 container number joins", func(t *testing.T) {
		got := JoinContainerMeta(
			[]Record{{FieldContainerNo: int32(1234567)}},
			[]Record{{FieldContainerNo: "1234567", FieldSealNo: "S-9"}},
		)
		require.Len(t, got, 1)
		assert.Equal(t, "S-9", got[0].Str(FieldSealNo))
	})
}
