package cart

// The helpers below never modify their input slice.

func addItem(items []Item, id string) []Item {
	next := make([]Item, 0, len(items)+1)
	found := false
	for _, it := range items {
		if it.ID == id {
			it.Quantity++
			found = true
		}
		next = append(next, it)
	}
	if !found {
		next = append(next, Item{ID: id, Quantity: 1})
	}
	return next
}

func removeItem(items []Item, id string) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID != id {
			next = append(next, it)
		}
	}
	return next
}

// adjustItem applies delta to id's quantity, clamping at zero and dropping
// entries that end up empty.
func adjustItem(items []Item, id string, delta int) []Item {
	next := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ID == id {
			it.Quantity += delta
			if it.Quantity < 0 {
				it.Quantity = 0
			}
		}
		if it.Quantity > 0 {
			next = append(next, it)
		}
	}
	return next
}

func containsItem(items []Item, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}

func countItems(items []Item) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}
