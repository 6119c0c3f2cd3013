package shapes

// catalog is the fixed table of offered shapes, grouped by cell count.
var catalog = []Shape{
	// one cell
	mustRows("#"),

	// two cells
	mustRows("##"),
	mustRows("#", "#"),

	// three cells
	mustRows("###"),
	mustRows("#", "#", "#"),
	mustRows("##", "#."),
	mustRows("##", ".#"),
	mustRows(".#", "##"),
	mustRows("#.", "##"),

	// four cells
	mustRows("####"),
	mustRows("#", "#", "#", "#"),
	mustRows("##", "##"),
	mustRows("###", "#.."),
	mustRows("###", "..#"),
	mustRows("#..", "###"),
	mustRows("..#", "###"),
	mustRows("##", "#.", "#."),
	mustRows("##", ".#", ".#"),
	mustRows("#.", "#.", "##"),
	mustRows(".#", ".#", "##"),

	// five cells
	mustRows("#####"),
	mustRows("#", "#", "#", "#", "#"),
	mustRows("###", "##."),
	mustRows("###", ".##"),
	mustRows("##.", "###"),
	mustRows(".##", "###"),
	mustRows("###", "#.#"),
	mustRows("#.#", "###"),
	mustRows("##", "##", "#."),
	mustRows("##", "##", ".#"),
	mustRows("#.", "##", "##"),
	mustRows(".#", "##", "##"),
}

func mustRows(rows ...string) Shape {
	s, err := FromRows(rows...)
	if err != nil {
		panic(err)
	}
	return s
}

// All returns the catalog in its fixed order. The returned slice is a copy;
// the shapes themselves are immutable and shared.
func All() []Shape {
	return append([]Shape(nil), catalog...)
}

// Len returns the number of shapes in the catalog.
func Len() int {
	return len(catalog)
}

// At returns the catalog shape at index i.
func At(i int) Shape {
	return catalog[i]
}
