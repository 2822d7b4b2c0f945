package main

import (
	"testing"
)

func TestRewritePlainReg(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"basic", "sfr P1 = 0x90;", "__sfr __at (0x90) P1;"},
		{"lowercase digits uppercased", "sfr ADC_CTRL = 0xbb;", "__sfr __at (0xBB) ADC_CTRL;"},
		{"digit width preserved", "sfr ODD = 0x080;", "__sfr __at (0x080) ODD;"},
		{"indent and comment kept", "  sfr SBUF = 0x99;  // serial buffer", "  __sfr __at (0x99) SBUF;  // serial buffer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := classifyLine(tt.line)
			if d.Kind != linePlainReg {
				t.Fatalf("classifyLine(%q).Kind = %v, want sfr", tt.line, d.Kind)
			}
			if got := rewritePlainReg(d); got != tt.want {
				t.Errorf("rewritePlainReg(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestRewriteWideReg(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"rom address pair", "sfr16 ROM_ADDR = 0x84;", "__sfr16 __at (0x8584) ROM_ADDR;"},
		{"low nibble pair", "sfr16 ADC_DAT = 0xE8;", "__sfr16 __at (0xE9E8) ADC_DAT;"},
		{"comment kept", "sfr16 UEP0_DMA = 0xEC; // endpoint 0 buffer", "__sfr16 __at (0xEDEC) UEP0_DMA; // endpoint 0 buffer"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := classifyLine(tt.line)
			if d.Kind != lineWideReg {
				t.Fatalf("classifyLine(%q).Kind = %v, want sfr16", tt.line, d.Kind)
			}
			if got := rewriteWideReg(d); got != tt.want {
				t.Errorf("rewriteWideReg(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestRewriteBitAlias(t *testing.T) {
	table := map[string]int{"PSW": 0xD0, "TCON": 0x88}
	tests := []struct {
		name   string
		line   string
		want   string
		wantOK bool
	}{
		{"high bit", "sbit CY = PSW^7;", "__sbit __at (0xD7) CY;", true},
		{"zero bit", "sbit IT0 = TCON^0;", "__sbit __at (0x88) IT0;", true},
		{"comment kept", " sbit AC = PSW^6; // aux carry", " __sbit __at (0xD6) AC; // aux carry", true},
		{"unknown base", "sbit X = NOPE^3;", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := classifyLine(tt.line)
			if d.Kind != lineBitAlias {
				t.Fatalf("classifyLine(%q).Kind = %v, want sbit", tt.line, d.Kind)
			}
			got, ok := rewriteBitAlias(d, table)
			if ok != tt.wantOK {
				t.Fatalf("rewriteBitAlias(%q) ok = %v, want %v", tt.line, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("rewriteBitAlias(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestRewriteExternAbs(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"typedef type", "EXTERN UINT8X XSFR_BUF _AT_ 0x29EC;", "extern UINT8X __at (0x29EC) XSFR_BUF;"},
		{"multi-token type", "EXTERN unsigned char xdata DMA_BUF _AT_ 0x0100;", "extern unsigned char xdata __at (0x0100) DMA_BUF;"},
		{"lowercase address", "EXTERN UINT8X RX_BUF _AT_ 0x2a00;", "extern UINT8X __at (0x2A00) RX_BUF;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := classifyLine(tt.line)
			if d.Kind != lineExternAbs {
				t.Fatalf("classifyLine(%q).Kind = %v, want extern", tt.line, d.Kind)
			}
			if got := rewriteExternAbs(d); got != tt.want {
				t.Errorf("rewriteExternAbs(%q) = %q, want %q", tt.line, got, tt.want)
			}
		})
	}
}

func TestRewriteBitKeyword(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		changed bool
	}{
		{"declaration", "bit trust_flag;", "__bit trust_flag;", true},
		{"parameter list", "void set(bit on);", "void set(__bit on);", true},
		{"keyword in comment only", "// wait a bit before retry", "// wait a bit before retry", false},
		{"code and comment", "bit done; // set a bit later", "__bit done; // set a bit later", true},
		{"inside identifier", "int orbit = 1;", "int orbit = 1;", false},
		{"already rewritten", "__bit done;", "__bit done;", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := rewriteBitKeyword(tt.line)
			if got != tt.want || changed != tt.changed {
				t.Errorf("rewriteBitKeyword(%q) = %q, %v, want %q, %v", tt.line, got, changed, tt.want, tt.changed)
			}
		})
	}
}

func TestStripTypedefSpaces(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		want    string
		changed bool
	}{
		{
			"xdata typedef",
			"typedef unsigned char  xdata UINT8X;",
			"typedef unsigned char UINT8X;",
			true,
		},
		{
			"code typedef with comment",
			"typedef unsigned long code  UINT32C;  // flash constant",
			"typedef unsigned long UINT32C; // flash constant",
			true,
		},
		{
			"indent survives",
			"\ttypedef unsigned short pdata UINT16P;",
			"\ttypedef unsigned short UINT16P;",
			true,
		},
		{
			"plain typedef untouched",
			"typedef unsigned char UINT8;",
			"typedef unsigned char UINT8;",
			false,
		},
		{
			"keyword only in comment",
			"typedef unsigned char UINT8; // not xdata",
			"typedef unsigned char UINT8; // not xdata",
			false,
		},
		{
			"non-typedef line untouched",
			"unsigned char xdata buf[16];",
			"unsigned char xdata buf[16];",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := stripTypedefSpaces(tt.line)
			if got != tt.want || changed != tt.changed {
				t.Errorf("stripTypedefSpaces(%q) = %q, %v, want %q, %v", tt.line, got, changed, tt.want, tt.changed)
			}
		})
	}
}
