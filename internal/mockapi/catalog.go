package mockapi

import (
	"net/http"
	"strings"

	"shopadmin/internal/domain"
)

// hydrate fills the reference objects a product response embeds. Callers hold b.mu.
func (b *Backend) hydrate(p domain.Product) domain.Product {
	p.ClothingType, p.Collection = nil, nil
	if p.ClothingTypeID != nil {
		if t, ok := b.clothingTypes.get(*p.ClothingTypeID); ok {
			p.ClothingType = &t
		}
	}
	if p.CollectionID != nil {
		if c, ok := b.collections.get(*p.CollectionID); ok {
			c.Products = nil
			p.Collection = &c
		}
	}
	return p
}

func (b *Backend) resolveSizes(ids []int64) []domain.Size {
	out := []domain.Size{}
	for _, id := range ids {
		if s, ok := b.sizes.get(id); ok {
			out = append(out, s)
		}
	}
	return out
}

func (b *Backend) resolveColors(ids []int64) []domain.Color {
	out := []domain.Color{}
	for _, id := range ids {
		if c, ok := b.colors.get(id); ok {
			out = append(out, c)
		}
	}
	return out
}

// ----- products -----

func (b *Backend) listProducts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	q := r.URL.Query()
	rows := b.products.list(func(p domain.Product) bool {
		if p.Status == domain.ProductDeleted && q.Get("status") != string(domain.ProductDeleted) {
			return false
		}
		if v := q.Get("gender"); v != "" && string(p.Gender) != v {
			return false
		}
		if v := q.Get("status"); v != "" && string(p.Status) != v {
			return false
		}
		if v := queryInt(r, "clothingTypeId", 0); v > 0 && (p.ClothingTypeID == nil || *p.ClothingTypeID != int64(v)) {
			return false
		}
		if v := queryInt(r, "collectionId", 0); v > 0 && (p.CollectionID == nil || *p.CollectionID != int64(v)) {
			return false
		}
		if q.Get("notInCollection") == "true" && p.CollectionID != nil {
			return false
		}
		return containsFold(p.Name, q.Get("search"))
	})
	page, meta := paginate(r, rows, 20)
	for i := range page {
		page[i] = b.hydrate(page[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products": page, "totalCount": meta.TotalCount, "currentPage": meta.CurrentPage, "totalPages": meta.TotalPages,
	})
}

func (b *Backend) getProduct(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, found := b.products.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	writeJSON(w, http.StatusOK, b.hydrate(p))
}

// productFromForm applies the multipart fields onto p and validates the result.
func (b *Backend) productFromForm(r *http.Request, p *domain.Product) string {
	p.Name = strings.TrimSpace(r.FormValue("name"))
	p.Description = r.FormValue("description")
	p.Color = r.FormValue("color")
	p.Ingredients = r.FormValue("ingredients")
	p.Gender = domain.Gender(r.FormValue("gender"))
	kzt, okK := formFloat(r, "priceKZT")
	usd, okU := formFloat(r, "priceUSD")
	p.PriceKZT, p.PriceUSD = kzt, usd
	p.ClothingTypeID = formOptionalID(r, "clothingTypeId")
	p.CollectionID = formOptionalID(r, "collectionId")
	p.Sizes = b.resolveSizes(formIDs(r, "sizeIds"))
	p.Colors = b.resolveColors(formIDs(r, "colorIds"))
	switch {
	case p.Name == "":
		return "name is required"
	case !okK || !okU || kzt < 0 || usd < 0:
		return "prices must be non-negative numbers"
	case p.Gender != domain.GenderMan && p.Gender != domain.GenderWoman:
		return "gender must be MAN or WOMAN"
	}
	if p.ClothingTypeID != nil {
		if _, found := b.clothingTypes.get(*p.ClothingTypeID); !found {
			return "clothing type not found"
		}
	}
	if p.CollectionID != nil {
		if _, found := b.collections.get(*p.CollectionID); !found {
			return "collection not found"
		}
	}
	return ""
}

func (b *Backend) createProduct(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.opts.Now()
	p := domain.Product{Status: domain.ProductAvailable, CreatedAt: now, UpdatedAt: now}
	if msg := b.productFromForm(r, &p); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	p = b.products.insert(p)
	p.MediaFiles = b.uploads(r, "product", p.ID)
	b.products.put(p)
	writeJSON(w, http.StatusCreated, b.hydrate(p))
}

func (b *Backend) updateProduct(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, found := b.products.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	if msg := b.productFromForm(r, &p); msg != "" {
		fail(w, http.StatusBadRequest, msg)
		return
	}
	p.MediaFiles = append(dropMedia(p.MediaFiles, formIDs(r, "deletedMediaIds")), b.uploads(r, "product", p.ID)...)
	p.UpdatedAt = b.opts.Now()
	b.products.put(p)
	writeJSON(w, http.StatusOK, b.hydrate(p))
}

func (b *Backend) deleteProduct(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.products.remove(pathID(r, "id")) {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	ok(w, "product deleted")
}

func (b *Backend) deleteProductMedia(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, found := b.products.get(pathID(r, "id"))
	mediaID := pathID(r, "mediaId")
	if !found || !hasMedia(p.MediaFiles, mediaID) {
		fail(w, http.StatusNotFound, "media file not found")
		return
	}
	p.MediaFiles = domain.WithoutMedia(p.MediaFiles, mediaID)
	b.products.put(p)
	ok(w, "media file deleted")
}

// ----- clothing types -----

var defaultClothingTypeNames = []string{"T-shirts", "Shirts", "Hoodies", "Sweaters", "Jackets", "Coats", "Pants", "Jeans", "Shorts", "Dresses", "Skirts"}

func (b *Backend) listClothingTypes(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.clothingTypes.list(nil))
}

func (b *Backend) getClothingType(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	t, found := b.clothingTypes.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "clothing type not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) clothingTypeNameTaken(name string, except int64) bool {
	for _, t := range b.clothingTypes.rows {
		if t.ID != except && strings.EqualFold(t.Name, name) {
			return true
		}
	}
	return false
}

func (b *Backend) createClothingType(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if !decode(r, &in) || strings.TrimSpace(in.Name) == "" {
		fail(w, http.StatusBadRequest, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.clothingTypeNameTaken(in.Name, 0) {
		fail(w, http.StatusBadRequest, "clothing type already exists")
		return
	}
	now := b.opts.Now()
	t := b.clothingTypes.insert(domain.ClothingType{Name: strings.TrimSpace(in.Name), CreatedAt: now, UpdatedAt: now})
	writeJSON(w, http.StatusCreated, t)
}

func (b *Backend) updateClothingType(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if !decode(r, &in) || strings.TrimSpace(in.Name) == "" {
		fail(w, http.StatusBadRequest, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	t, found := b.clothingTypes.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "clothing type not found")
		return
	}
	if b.clothingTypeNameTaken(in.Name, t.ID) {
		fail(w, http.StatusBadRequest, "clothing type already exists")
		return
	}
	t.Name, t.UpdatedAt = strings.TrimSpace(in.Name), b.opts.Now()
	b.clothingTypes.put(t)
	writeJSON(w, http.StatusOK, t)
}

func (b *Backend) deleteClothingType(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r, "id")
	if _, found := b.clothingTypes.get(id); !found {
		fail(w, http.StatusNotFound, "clothing type not found")
		return
	}
	for _, p := range b.products.rows {
		if p.ClothingTypeID != nil && *p.ClothingTypeID == id {
			fail(w, http.StatusConflict, "clothing type is used by products and cannot be deleted")
			return
		}
	}
	b.clothingTypes.remove(id)
	ok(w, "clothing type deleted")
}

func (b *Backend) defaultClothingTypes(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	created := []domain.ClothingType{}
	now := b.opts.Now()
	for _, name := range defaultClothingTypeNames {
		if b.clothingTypeNameTaken(name, 0) {
			continue
		}
		created = append(created, b.clothingTypes.insert(domain.ClothingType{Name: name, CreatedAt: now, UpdatedAt: now}))
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "default clothing types created", "createdTypes": created})
}

func (b *Backend) clothingTypeStatistics(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	stats := []domain.ClothingTypeStat{}
	for _, t := range b.clothingTypes.list(nil) {
		n := 0
		for _, p := range b.products.rows {
			if p.ClothingTypeID != nil && *p.ClothingTypeID == t.ID {
				n++
			}
		}
		stats = append(stats, domain.ClothingTypeStat{ID: t.ID, Name: t.Name, ProductCount: n})
	}
	writeJSON(w, http.StatusOK, stats)
}

// ----- colors -----

var defaultColors = []domain.Color{
	{Name: "Black", HexCode: "#000000"},
	{Name: "White", HexCode: "#FFFFFF"},
	{Name: "Gray", HexCode: "#808080"},
	{Name: "Beige", HexCode: "#F5F5DC"},
	{Name: "Navy", HexCode: "#000080"},
	{Name: "Brown", HexCode: "#8B4513"},
}

type colorBody struct {
	Name    string `json:"name"`
	HexCode string `json:"hexCode"`
}

func (b *Backend) colorNameTaken(name string, except int64) bool {
	for _, c := range b.colors.rows {
		if c.ID != except && strings.EqualFold(c.Name, name) {
			return true
		}
	}
	return false
}

func (b *Backend) listColors(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.colors.list(nil))
}

func (b *Backend) createColor(w http.ResponseWriter, r *http.Request) {
	var in colorBody
	if !decode(r, &in) || strings.TrimSpace(in.Name) == "" {
		fail(w, http.StatusBadRequest, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.colorNameTaken(in.Name, 0) {
		fail(w, http.StatusBadRequest, "color already exists")
		return
	}
	now := b.opts.Now()
	c := b.colors.insert(domain.Color{Name: strings.TrimSpace(in.Name), HexCode: in.HexCode, CreatedAt: now, UpdatedAt: now})
	writeJSON(w, http.StatusCreated, c)
}

func (b *Backend) updateColor(w http.ResponseWriter, r *http.Request) {
	var in colorBody
	if !decode(r, &in) {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, found := b.colors.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "color not found")
		return
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		if b.colorNameTaken(name, c.ID) {
			fail(w, http.StatusBadRequest, "color already exists")
			return
		}
		c.Name = name
	}
	if in.HexCode != "" {
		c.HexCode = in.HexCode
	}
	c.UpdatedAt = b.opts.Now()
	b.colors.put(c)
	writeJSON(w, http.StatusOK, c)
}

func (b *Backend) deleteColor(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.colors.remove(pathID(r, "id")) {
		fail(w, http.StatusNotFound, "color not found")
		return
	}
	ok(w, "color deleted")
}

func (b *Backend) defaultColors(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	created := []domain.Color{}
	now := b.opts.Now()
	for _, c := range defaultColors {
		if b.colorNameTaken(c.Name, 0) {
			continue
		}
		c.CreatedAt, c.UpdatedAt = now, now
		created = append(created, b.colors.insert(c))
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "default colors created", "createdColors": created})
}

func (b *Backend) addProductColors(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ColorIDs []int64 `json:"colorIds"`
	}
	if !decode(r, &in) {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, found := b.products.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	for _, c := range b.resolveColors(in.ColorIDs) {
		if !containsKey(p.Colors, c.ID) {
			p.Colors = append(p.Colors, c)
		}
	}
	b.products.put(p)
	writeJSON(w, http.StatusOK, b.hydrate(p))
}

func (b *Backend) removeProductColor(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, found := b.products.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	p.Colors = withoutKey(p.Colors, pathID(r, "colorId"))
	b.products.put(p)
	ok(w, "color removed from product")
}

// ----- sizes -----

var defaultSizeNames = []string{"XS", "S", "M", "L", "XL", "XXL"}

func (b *Backend) sizeNameTaken(name string, except int64) bool {
	for _, s := range b.sizes.rows {
		if s.ID != except && strings.EqualFold(s.Name, name) {
			return true
		}
	}
	return false
}

func (b *Backend) listSizes(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	writeJSON(w, http.StatusOK, b.sizes.list(nil))
}

func (b *Backend) createSize(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if !decode(r, &in) || strings.TrimSpace(in.Name) == "" {
		fail(w, http.StatusBadRequest, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.sizeNameTaken(in.Name, 0) {
		fail(w, http.StatusBadRequest, "size already exists")
		return
	}
	now := b.opts.Now()
	writeJSON(w, http.StatusCreated, b.sizes.insert(domain.Size{Name: strings.TrimSpace(in.Name), CreatedAt: now, UpdatedAt: now}))
}

func (b *Backend) updateSize(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name"`
	}
	if !decode(r, &in) || strings.TrimSpace(in.Name) == "" {
		fail(w, http.StatusBadRequest, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	s, found := b.sizes.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "size not found")
		return
	}
	if b.sizeNameTaken(in.Name, s.ID) {
		fail(w, http.StatusBadRequest, "size already exists")
		return
	}
	s.Name, s.UpdatedAt = strings.TrimSpace(in.Name), b.opts.Now()
	b.sizes.put(s)
	writeJSON(w, http.StatusOK, s)
}

func (b *Backend) deleteSize(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.sizes.remove(pathID(r, "id")) {
		fail(w, http.StatusNotFound, "size not found")
		return
	}
	ok(w, "size deleted")
}

func (b *Backend) defaultSizes(w http.ResponseWriter, _ *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	created := []domain.Size{}
	now := b.opts.Now()
	for _, name := range defaultSizeNames {
		if b.sizeNameTaken(name, 0) {
			continue
		}
		created = append(created, b.sizes.insert(domain.Size{Name: name, CreatedAt: now, UpdatedAt: now}))
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "default sizes created", "createdSizes": created})
}

func (b *Backend) addProductSizes(w http.ResponseWriter, r *http.Request) {
	var in struct {
		SizeIDs []int64 `json:"sizeIds"`
	}
	if !decode(r, &in) {
		fail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	p, found := b.products.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	for _, s := range b.resolveSizes(in.SizeIDs) {
		if !containsKey(p.Sizes, s.ID) {
			p.Sizes = append(p.Sizes, s)
		}
	}
	b.products.put(p)
	writeJSON(w, http.StatusOK, b.hydrate(p))
}

func (b *Backend) removeProductSize(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	p, found := b.products.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	p.Sizes = withoutKey(p.Sizes, pathID(r, "sizeId"))
	b.products.put(p)
	ok(w, "size removed from product")
}

func containsKey[T interface{ Key() int64 }](rows []T, id int64) bool {
	for _, v := range rows {
		if v.Key() == id {
			return true
		}
	}
	return false
}

func withoutKey[T interface{ Key() int64 }](rows []T, id int64) []T {
	out := make([]T, 0, len(rows))
	for _, v := range rows {
		if v.Key() != id {
			out = append(out, v)
		}
	}
	return out
}

// ----- collections -----

// withProducts embeds the member products. Callers hold b.mu.
func (b *Backend) withProducts(c domain.Collection) domain.Collection {
	c.Products = b.products.list(func(p domain.Product) bool {
		return p.CollectionID != nil && *p.CollectionID == c.ID
	})
	return c
}

func (b *Backend) listCollections(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	page, meta := paginate(r, b.collections.list(nil), 20)
	for i := range page {
		page[i] = b.withProducts(page[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"collections": page, "totalCount": meta.TotalCount, "currentPage": meta.CurrentPage, "totalPages": meta.TotalPages,
	})
}

func (b *Backend) getCollection(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, found := b.collections.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "collection not found")
		return
	}
	writeJSON(w, http.StatusOK, b.withProducts(c))
}

func (b *Backend) listCollectionProducts(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, found := b.collections.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "collection not found")
		return
	}
	page, meta := paginate(r, b.withProducts(c).Products, 20)
	for i := range page {
		page[i] = b.hydrate(page[i])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"products": page, "totalCount": meta.TotalCount, "currentPage": meta.CurrentPage, "totalPages": meta.TotalPages,
	})
}

func (b *Backend) createCollection(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		fail(w, http.StatusBadRequest, "name is required")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	now := b.opts.Now()
	c := b.collections.insert(domain.Collection{Name: name, Description: r.FormValue("description"), CreatedAt: now, UpdatedAt: now})
	c.MediaFiles = b.uploads(r, "collection", c.ID)
	b.collections.put(c)
	writeJSON(w, http.StatusCreated, b.withProducts(c))
}

func (b *Backend) updateCollection(w http.ResponseWriter, r *http.Request) {
	if err := parseMultipart(r); err != nil {
		fail(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	c, found := b.collections.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "collection not found")
		return
	}
	if name := strings.TrimSpace(r.FormValue("name")); name != "" {
		c.Name = name
	}
	c.Description = r.FormValue("description")
	c.MediaFiles = append(dropMedia(c.MediaFiles, formIDs(r, "deletedMediaIds")), b.uploads(r, "collection", c.ID)...)
	c.UpdatedAt = b.opts.Now()
	b.collections.put(c)
	writeJSON(w, http.StatusOK, b.withProducts(c))
}

func (b *Backend) deleteCollection(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := pathID(r, "id")
	if !b.collections.remove(id) {
		fail(w, http.StatusNotFound, "collection not found")
		return
	}
	for _, p := range b.products.rows {
		if p.CollectionID != nil && *p.CollectionID == id {
			p.CollectionID = nil
			b.products.put(p)
		}
	}
	ok(w, "collection deleted")
}

func (b *Backend) deleteCollectionMedia(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, found := b.collections.get(pathID(r, "id"))
	mediaID := pathID(r, "mediaId")
	if !found || !hasMedia(c.MediaFiles, mediaID) {
		fail(w, http.StatusNotFound, "media file not found")
		return
	}
	c.MediaFiles = domain.WithoutMedia(c.MediaFiles, mediaID)
	b.collections.put(c)
	ok(w, "media file deleted")
}

func (b *Backend) addCollectionProduct(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	c, found := b.collections.get(pathID(r, "id"))
	if !found {
		fail(w, http.StatusNotFound, "collection not found")
		return
	}
	p, found := b.products.get(pathID(r, "productId"))
	if !found {
		fail(w, http.StatusNotFound, "product not found")
		return
	}
	if p.CollectionID != nil && *p.CollectionID != c.ID {
		fail(w, http.StatusBadRequest, "product already belongs to another collection")
		return
	}
	p.CollectionID = &c.ID
	b.products.put(p)
	ok(w, "product added to collection")
}

func (b *Backend) removeCollectionProduct(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	cid := pathID(r, "id")
	p, found := b.products.get(pathID(r, "productId"))
	if !found || p.CollectionID == nil || *p.CollectionID != cid {
		fail(w, http.StatusNotFound, "product is not in this collection")
		return
	}
	p.CollectionID = nil
	b.products.put(p)
	ok(w, "product removed from collection")
}
