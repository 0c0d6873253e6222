package extract_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/mweegram/tickful/pkg/service/extract"
)

func TestEmailAddresses(t *testing.T) {
	got := extract.EmailAddresses("reported by alice@example.com and mallory+spam@evil.example, ignore @nothing")
	gt.A(t, got).Length(2)
	gt.V(t, got[0]).Equal("alice@example.com")
	gt.V(t, got[1]).Equal("mallory+spam@evil.example")
}

func TestIPAddresses(t *testing.T) {
	t.Run("finds dotted quads", func(t *testing.T) {
		got := extract.IPAddresses("traffic from 10.0.0.7 to 192.168.1.200")
		gt.A(t, got).Length(2)
		gt.V(t, got[0]).Equal("10.0.0.7")
		gt.V(t, got[1]).Equal("192.168.1.200")
	})

	t.Run("drops out of range octets", func(t *testing.T) {
		got := extract.IPAddresses("bogus address 999.1.2.3 in the log")
		gt.A(t, got).Length(0)
	})
}

func TestMACAddresses(t *testing.T) {
	got := extract.MACAddresses("device aa:bb:cc:dd:ee:ff and AA-BB-CC-00-11-22 seen")
	gt.A(t, got).Length(2)
	gt.V(t, got[0]).Equal("aa:bb:cc:dd:ee:ff")
	gt.V(t, got[1]).Equal("AA-BB-CC-00-11-22")
}

func TestCandidates(t *testing.T) {
	t.Run("title first, then body fields, deduplicated", func(t *testing.T) {
		got := extract.Candidates(
			"Phishing from mallory@evil.example",
			"sender mallory@evil.example, relay 10.0.0.7, victim device aa:bb:cc:dd:ee:ff",
		)
		gt.A(t, got).Length(3)
		gt.V(t, got[0]).Equal("mallory@evil.example")
		gt.V(t, got[1]).Equal("10.0.0.7")
		gt.V(t, got[2]).Equal("aa:bb:cc:dd:ee:ff")
	})

	t.Run("nothing extractable yields nothing", func(t *testing.T) {
		got := extract.Candidates("plain subject", "plain body without indicators")
		gt.A(t, got).Length(0)
	})
}

func TestParseQueueRef(t *testing.T) {
	t.Run("splits reference and title", func(t *testing.T) {
		ref, title, ok := extract.ParseQueueRef("3 - Port scan detected")
		gt.True(t, ok)
		gt.V(t, ref).Equal("3")
		gt.V(t, title).Equal("Port scan detected")
	})

	t.Run("no hyphen means no reference", func(t *testing.T) {
		ref, title, ok := extract.ParseQueueRef("  Plain subject ")
		gt.False(t, ok)
		gt.V(t, ref).Equal("")
		gt.V(t, title).Equal("Plain subject")
	})
}
