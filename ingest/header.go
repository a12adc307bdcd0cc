package ingest

import "shopfeed/internal/textutil"

// Canonical field names. These are also the accepted keys for the
// header_aliases configuration section.
const (
	FieldHandleID     = "handleId"
	FieldName         = "name"
	FieldDescription  = "description"
	FieldImageURL     = "imageUrl"
	FieldPrice        = "price"
	FieldSKU          = "sku"
	FieldCollection   = "collection"
	FieldSize         = "size"
	FieldDateUploaded = "dateUploaded"
)

var fieldOrder = []string{
	FieldHandleID,
	FieldName,
	FieldDescription,
	FieldImageURL,
	FieldPrice,
	FieldSKU,
	FieldCollection,
	FieldSize,
	FieldDateUploaded,
}

// CanonicalFields returns the canonical field names in record order.
func CanonicalFields() []string {
	out := make([]string, len(fieldOrder))
	copy(out, fieldOrder)
	return out
}

// vocabulary maps each canonical field to the spellings it is recognized
// under, pre-normalized with textutil.NormalizeKey. Export tools disagree
// wildly on header names; this list grows as new ones show up.
var vocabulary = map[string][]string{
	FieldHandleID:     {"handleid", "handle", "id", "productid", "itemid", "uid", "slug"},
	FieldName:         {"name", "title", "productname", "producttitle", "itemname", "itemtitle", "displayname"},
	FieldDescription:  {"description", "desc", "body", "bodyhtml", "details", "productdescription", "summary"},
	FieldImageURL:     {"imageurl", "image", "images", "imagesrc", "imagelink", "photo", "photourl", "picture", "pictureurl", "mainimage", "featuredimage", "productimageurl"},
	FieldPrice:        {"price", "variantprice", "saleprice", "regularprice", "unitprice", "amount"},
	FieldSKU:          {"sku", "variantsku", "itemsku", "skucode", "partnumber"},
	FieldCollection:   {"collection", "collections", "category", "categories", "producttype", "productcategory", "group", "department"},
	FieldSize:         {"size", "sizes", "variantsize", "sizename"},
	FieldDateUploaded: {"dateuploaded", "uploaddate", "date", "datecreated", "createdat", "created", "dateadded", "publishedat", "publisheddate"},
}

// columns holds the resolved column index per canonical field, -1 when the
// file does not carry the field.
type columns struct {
	handle      int
	name        int
	description int
	image       int
	price       int
	sku         int
	collection  int
	size        int
	date        int
}

func (c columns) unresolved() bool {
	return c.handle < 0 && c.name < 0 && c.description < 0 && c.image < 0 &&
		c.price < 0 && c.sku < 0 && c.collection < 0 && c.size < 0 && c.date < 0
}

// resolveColumns binds each canonical field to the leftmost header cell
// whose normalized form is in the field's spelling set. When no field
// resolves at all, the file uses an unknown vocabulary and the two required
// fields fall back to the conventional positions: name in column 0, image
// in column 1.
func resolveColumns(header []string, aliases map[string][]string) columns {
	keys := make([]string, len(header))
	for i, cell := range header {
		keys[i] = textutil.NormalizeKey(cell)
	}

	cols := columns{
		handle:      findColumn(keys, spellingSet(FieldHandleID, aliases)),
		name:        findColumn(keys, spellingSet(FieldName, aliases)),
		description: findColumn(keys, spellingSet(FieldDescription, aliases)),
		image:       findColumn(keys, spellingSet(FieldImageURL, aliases)),
		price:       findColumn(keys, spellingSet(FieldPrice, aliases)),
		sku:         findColumn(keys, spellingSet(FieldSKU, aliases)),
		collection:  findColumn(keys, spellingSet(FieldCollection, aliases)),
		size:        findColumn(keys, spellingSet(FieldSize, aliases)),
		date:        findColumn(keys, spellingSet(FieldDateUploaded, aliases)),
	}
	if cols.unresolved() {
		cols.name = 0
		cols.image = 1
	}
	return cols
}

func findColumn(keys []string, spellings map[string]struct{}) int {
	for i, key := range keys {
		if key == "" {
			continue
		}
		if _, ok := spellings[key]; ok {
			return i
		}
	}
	return -1
}

// spellingSet merges the built-in vocabulary with configured aliases.
// Alias map keys are matched loosely because config layers lowercase them.
func spellingSet(field string, aliases map[string][]string) map[string]struct{} {
	set := make(map[string]struct{}, len(vocabulary[field]))
	for _, spelling := range vocabulary[field] {
		set[spelling] = struct{}{}
	}
	for key, extra := range aliases {
		if textutil.NormalizeKey(key) != textutil.NormalizeKey(field) {
			continue
		}
		for _, alias := range extra {
			if normalized := textutil.NormalizeKey(alias); normalized != "" {
				set[normalized] = struct{}{}
			}
		}
	}
	return set
}
