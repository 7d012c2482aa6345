package schema

// Manipulate validates and enriches a document in place:
//
//  1. defaults.columns entries are merged into same-named columns
//     (explicit column fields always win),
//  2. every column gains a Table back-reference to its owning table,
//  3. columns with a Ref copy the referenced record's type and width.
//
// It returns on the first violation; a failed call leaves the document
// partially rewritten, so callers must discard it on error.
func Manipulate(doc *Document) error {
	defaults, err := indexDefaults(doc.Defaults)
	if err != nil {
		return err
	}

	seenTables := make(map[string]struct{}, len(doc.Tables))
	for _, t := range doc.Tables {
		if t.Name == "" {
			return &MissingNameError{Kind: KindTable}
		}
		if _, ok := seenTables[t.Name]; ok {
			return &DuplicateNameError{Kind: KindTable, Name: t.Name}
		}
		seenTables[t.Name] = struct{}{}

		seenColumns := make(map[string]struct{}, len(t.Columns))
		for _, c := range t.Columns {
			if c.Name == "" {
				return &MissingNameError{Kind: KindColumn, Table: t.Name}
			}
			if _, ok := seenColumns[c.Name]; ok {
				return &DuplicateNameError{Kind: KindColumn, Name: c.Name, Table: t.Name}
			}
			seenColumns[c.Name] = struct{}{}

			if def, ok := defaults[c.Name]; ok {
				c.applyDefaults(def)
			}

			c.Table = t.Name
			c.resolveRef()
		}
	}

	return nil
}

// indexDefaults builds a name index over defaults.columns. A nil Defaults
// or empty column list yields an empty index.
func indexDefaults(d *Defaults) (map[string]*Column, error) {
	if d == nil {
		return nil, nil
	}
	index := make(map[string]*Column, len(d.Columns))
	for _, c := range d.Columns {
		if c.Name == "" {
			return nil, &MissingNameError{Kind: KindDefault}
		}
		if _, ok := index[c.Name]; ok {
			return nil, &DuplicateNameError{Kind: KindDefault, Name: c.Name}
		}
		index[c.Name] = c
	}
	return index, nil
}

// applyDefaults copies fields from a default record into the column.
// Fields the column already defines are left alone.
func (c *Column) applyDefaults(def *Column) {
	if c.Type == "" {
		c.Type = def.Type
	}
	if c.Width == nil && def.Width != nil {
		w := *def.Width
		c.Width = &w
	}
	if c.Ref == nil {
		c.Ref = def.Ref
	}
	if len(def.Extra) > 0 && c.Extra == nil {
		c.Extra = make(map[string]any, len(def.Extra))
	}
	// Key presence decides, not value emptiness: an explicit false or ""
	// still beats a default.
	for k, v := range def.Extra {
		if _, ok := c.Extra[k]; !ok {
			c.Extra[k] = v
		}
	}
}

// resolveRef copies fields forward from the referenced column record.
// Type always follows the referenced column, even over a value the column
// (or a default) set; width is only a fallback for columns without one.
func (c *Column) resolveRef() {
	if c.Ref == nil {
		return
	}
	c.Type = c.Ref.Type
	if c.Width == nil && c.Ref.Width != nil {
		w := *c.Ref.Width
		c.Width = &w
	}
}
