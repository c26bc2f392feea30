package engine

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/peterldowns/testy/assert"
	"github.com/peterldowns/testy/check"
	"github.com/shopspring/decimal"

	"github.com/cloudx-io/reverseauction/core"
)

func TestAuctionsPage(t *testing.T) {
	f := newFixture(t)

	// Page zero of an empty index is a valid, empty page.
	ids, total, err := f.engine.AuctionsPage(0, 10)
	assert.Nil(t, err)
	check.Equal(t, 0, total)
	check.Equal(t, []int64{}, ids)

	for i := 0; i < 5; i++ {
		f.open(t, core.AuctionTypeNormalSelect)
	}

	ids, total, err = f.engine.AuctionsPage(0, 2)
	assert.Nil(t, err)
	check.Equal(t, 5, total)
	check.Equal(t, []int64{1, 2}, ids)

	ids, _, err = f.engine.AuctionsPage(2, 2)
	assert.Nil(t, err)
	check.Equal(t, []int64{5}, ids)

	_, _, err = f.engine.AuctionsPage(3, 2)
	check.Equal(t, ErrPageOutOfBounds, err, cmpopts.EquateErrors())

	_, _, err = f.engine.AuctionsPage(0, 0)
	check.Equal(t, ErrPageSizeInvalid, err, cmpopts.EquateErrors())

	_, _, err = f.engine.AuctionsPage(-1, 2)
	check.Equal(t, ErrPageOutOfBounds, err, cmpopts.EquateErrors())
}

func TestMyAuctionsPage(t *testing.T) {
	f := newFixture(t)
	f.open(t, core.AuctionTypeNormalSelect)
	f.open(t, core.AuctionTypeModifierSelect)

	f.fund(t, "carl", prize)
	_, err := f.engine.CreateAuction("carl", CreateAuctionParams{
		Prize: f.asset.BalanceOf("carl"),
		Times: defaultTimes(),
		Type:  core.AuctionTypeNormalSelect,
	})
	assert.Nil(t, err)

	ids, total, err := f.engine.MyAuctionsPage("auctioneer", 0, 10)
	assert.Nil(t, err)
	check.Equal(t, 2, total)
	check.Equal(t, []int64{1, 2}, ids)

	ids, total, err = f.engine.MyAuctionsPage("carl", 0, 10)
	assert.Nil(t, err)
	check.Equal(t, 1, total)
	check.Equal(t, []int64{3}, ids)
}

func TestMyBidsInAuction(t *testing.T) {
	f := newFixture(t)
	a := f.open(t, core.AuctionTypeNormalSelect)

	_, err := f.engine.MyBidsInAuction("alice", 99)
	check.Equal(t, ErrAuctionNotFound, err, cmpopts.EquateErrors())

	t1 := f.commit(t, "alice", a.ID, 8, "x")
	f.commit(t, "bob", a.ID, 9, "y")
	t3 := f.commit(t, "alice", a.ID, 10, "z")

	bids, err := f.engine.MyBidsInAuction("alice", a.ID)
	assert.Nil(t, err)
	check.Equal(t, []int64{t1, t3}, bids)

	bids, err = f.engine.MyBidsInAuction("nobody", a.ID)
	assert.Nil(t, err)
	check.Equal(t, []int64{}, bids)
}

func TestUpdateNewAuctions(t *testing.T) {
	f := newFixture(t)
	f.open(t, core.AuctionTypeNormalSelect) // EndCommit 2000

	f.fund(t, "auctioneer", prize)
	longer := defaultTimes()
	longer.EndCommit = 5000
	_, err := f.engine.CreateAuction("auctioneer", CreateAuctionParams{
		Prize: decimal.NewFromInt(prize), Times: longer, Type: core.AuctionTypeNormalSelect,
	})
	assert.Nil(t, err)

	// Nothing has closed yet.
	check.Equal(t, 0, f.engine.UpdateNewAuctions())

	f.clock.now = 2001
	check.Equal(t, 1, f.engine.UpdateNewAuctions())

	ids, total, err := f.engine.AuctionsPage(0, 10)
	assert.Nil(t, err)
	check.Equal(t, 1, total)
	check.Equal(t, []int64{2}, ids)

	// Sweeping again removes nothing.
	check.Equal(t, 0, f.engine.UpdateNewAuctions())
}

func TestEventsJournal(t *testing.T) {
	f := newFixture(t)
	a := f.open(t, core.AuctionTypeNormalSelect)
	ticket := f.commit(t, "alice", a.ID, 8, "pw")

	f.clock.now = 2500
	_, err := f.engine.RevealAuction("alice", a.ID, ticket, 8, "pw")
	assert.Nil(t, err)
	_, err = f.engine.ClaimAuctionPrize("alice", a.ID, ticket)
	assert.Nil(t, err)

	events := f.engine.Events()
	assert.Equal(t, 4, len(events))
	check.Equal(t, EventCreateAuction, events[0].Kind)
	check.Equal(t, EventCommit, events[1].Kind)
	check.Equal(t, EventReveal, events[2].Kind)
	check.Equal(t, EventClaimPrize, events[3].Kind)

	check.Equal(t, int64(80), events[2].Value)
	check.Equal(t, "alice", events[3].Account)
	check.NotEqual(t, "", events[0].ID)
	check.Equal(t, int64(2500), events[2].At)

	raw, err := f.engine.JournalCBOR()
	assert.Nil(t, err)
	var decoded []Event
	assert.Nil(t, cbor.Unmarshal(raw, &decoded))
	check.Equal(t, events, decoded)
}
