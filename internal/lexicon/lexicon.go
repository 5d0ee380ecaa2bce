// Package lexicon holds the curated keyword lists that drive the fallback
// keyword classifier. Entries are ordered: the keyword classifier breaks
// score ties in favor of the earlier entry, so order is part of the contract.
package lexicon

import (
	"fmt"

	"dompet/categorizer/internal/models"
)

// Entry maps a category to its ordered keyword list.
type Entry struct {
	Category models.Category
	Keywords []string
}

// Lexicon is an ordered set of category entries. The catch-all category has
// no entry and is never scored directly.
type Lexicon struct {
	entries []Entry
	byName  map[models.Category]int
}

// New builds a Lexicon from entries, validating the invariants: every entry
// names a known, non-catch-all category exactly once and carries at least
// one keyword.
func New(entries []Entry) (*Lexicon, error) {
	byName := make(map[models.Category]int, len(entries))
	for i, e := range entries {
		if _, err := models.ParseCategory(string(e.Category)); err != nil {
			return nil, fmt.Errorf("lexicon entry %d: %w", i, err)
		}
		if e.Category == models.CategoryOther {
			return nil, fmt.Errorf("lexicon entry %d: catch-all category %q cannot carry keywords", i, models.CategoryOther)
		}
		if _, dup := byName[e.Category]; dup {
			return nil, fmt.Errorf("lexicon entry %d: duplicate category %q", i, e.Category)
		}
		if len(e.Keywords) == 0 {
			return nil, fmt.Errorf("lexicon entry %d: category %q has no keywords", i, e.Category)
		}
		byName[e.Category] = i
	}
	return &Lexicon{entries: entries, byName: byName}, nil
}

// Entries returns the entries in declaration order.
func (l *Lexicon) Entries() []Entry {
	return l.entries
}

// Keywords returns the keyword list for a category, or false when the
// category has no entry (unknown or catch-all).
func (l *Lexicon) Keywords(c models.Category) ([]string, bool) {
	i, ok := l.byName[c]
	if !ok {
		return nil, false
	}
	return l.entries[i].Keywords, true
}

// Categories returns the lexicon categories in declaration order, without
// the catch-all.
func (l *Lexicon) Categories() []models.Category {
	out := make([]models.Category, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Category
	}
	return out
}

// Default returns the built-in Indonesian/English lexicon. The lists are
// deliberately short: the classifier divides a category's raw score by its
// keyword count, so padding a list with rare keywords drags every match for
// that category below the confidence floor. Rebuilt on every call so callers
// can never mutate the shared copy.
func Default() *Lexicon {
	l, err := New(defaultEntries())
	if err != nil {
		// The built-in data is validated by tests; failing here means the
		// source itself is broken.
		panic(err)
	}
	return l
}

func defaultEntries() []Entry {
	return []Entry{
		{
			Category: models.CategoryFoodBeverage,
			Keywords: []string{
				"alfamart", "ayam", "bakso", "cafe", "coffee", "kopi", "makan",
				"makan malam", "makan siang", "mcd", "minum", "nasi", "restoran",
				"sarapan", "snack", "soto", "starbucks", "teh", "warteg", "warung",
			},
		},
		{
			Category: models.CategoryTransportation,
			Keywords: []string{
				"angkot", "bandara", "BBM", "bensin", "bus", "gojek", "grab",
				"kereta", "KRL", "MRT", "ojek", "parkir", "pertamina", "pesawat",
				"spbu", "stasiun", "taxi", "tiket", "tol",
			},
		},
		{
			Category: models.CategoryBills,
			Keywords: []string{
				"air", "asuransi", "bayar", "bpjs", "cicilan", "indihome",
				"internet", "iuran", "kredit", "listrik", "pajak", "pln",
				"pulsa", "tagihan", "telkomsel", "token listrik", "wifi", "xl",
			},
		},
		{
			Category: models.CategoryShopping,
			Keywords: []string{
				"baju", "belanja", "beli", "blibli", "bukalapak", "celana",
				"elektronik", "kosmetik", "lazada", "mall", "pakaian", "sabun",
				"sepatu", "shopee", "skincare", "tas", "toko", "tokopedia",
			},
		},
		{
			Category: models.CategoryEntertainment,
			Keywords: []string{
				"bioskop", "bowling", "cinema", "concert", "film", "game", "gym",
				"hotel", "karaoke", "konser", "liburan", "netflix", "olahraga",
				"rekreasi", "spotify", "tiket", "wisata", "youtube",
			},
		},
		{
			Category: models.CategoryHealth,
			Keywords: []string{
				"apotik", "dokter", "gigi", "imunisasi", "kacamata", "klinik",
				"laboratorium", "obat", "pharmacy", "psikolog", "rumah sakit",
				"rs", "suplemen", "terapi", "vaksin", "vitamin", "usg",
			},
		},
		{
			Category: models.CategoryEducation,
			Keywords: []string{
				"alat tulis", "bimbel", "buku", "kampus", "kuliah", "kursus",
				"les", "sekolah", "seminar", "semester", "skripsi", "spp",
				"ujian", "universitas", "webinar", "workshop",
			},
		},
		{
			Category: models.CategoryInvestment,
			Keywords: []string{
				"bareksa", "bitcoin", "crypto", "deposit", "emas", "ethereum",
				"indodax", "investasi", "obligasi", "reksadana", "saham",
				"saving", "sekuritas", "stock", "tabungan", "trading",
			},
		},
	}
}
