package engine

// AuctionsPage returns one page of the open-auction index together with the
// index's total length. The index holds auctions in creation order and may
// lag reality until UpdateNewAuctions sweeps it.
func (e *Engine) AuctionsPage(page, size int) ([]int64, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return paginate(e.newAuctions, page, size)
}

// MyAuctionsPage returns one page of the auctions created by account, in
// creation order, with the total count.
func (e *Engine) MyAuctionsPage(account string, page, size int) ([]int64, int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return paginate(e.byAuctioneer[account], page, size)
}

// MyBidsInAuction returns every ticket id committed by account in the given
// auction, in commit order. Tickets stay listed under the original committer
// even if later transferred.
func (e *Engine) MyBidsInAuction(account string, auctionID int64) ([]int64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.auctions[auctionID]; !ok {
		return nil, ErrAuctionNotFound
	}
	bids := e.bidsByOwner[auctionID][account]
	out := make([]int64, len(bids))
	copy(out, bids)
	return out, nil
}

// UpdateNewAuctions drops auctions whose commit window has closed from the
// open-auction index and returns how many were removed. Anyone may call it;
// it only trims a denormalized view.
func (e *Engine) UpdateNewAuctions() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	kept := e.newAuctions[:0]
	for _, id := range e.newAuctions {
		if e.auctions[id].Times.CommitOpen(now) {
			kept = append(kept, id)
		}
	}
	removed := len(e.newAuctions) - len(kept)
	e.newAuctions = kept
	return removed
}

// paginate slices one page out of ids. Page zero of an empty index succeeds
// with an empty page; any further page past the end is out of bounds.
func paginate(ids []int64, page, size int) ([]int64, int, error) {
	if size <= 0 {
		return nil, 0, ErrPageSizeInvalid
	}
	if page < 0 {
		return nil, 0, ErrPageOutOfBounds
	}
	start := page * size
	if start > 0 && start >= len(ids) {
		return nil, 0, ErrPageOutOfBounds
	}
	end := start + size
	if end > len(ids) {
		end = len(ids)
	}
	out := make([]int64, end-start)
	copy(out, ids[start:end])
	return out, len(ids), nil
}
