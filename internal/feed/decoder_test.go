package feed_test

import (
	"context"
	"strings"
	"testing"

	"github.com/marketfeed/trendyol-sync/internal/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const rssFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:g="http://base.google.com/ns/1.0">
  <channel>
    <title>Test Shop</title>
    <item>
      <g:id>SKU-1</g:id>
      <g:title>Çamaşır Deterjanı 4 KG</g:title>
      <g:description>Konsantre deterjan</g:description>
      <g:brand>Bingo</g:brand>
      <g:price>149,90 TRY</g:price>
      <g:quantity>12</g:quantity>
      <g:image_link>https://cdn.example.com/1.jpg</g:image_link>
    </item>
    <item>
      <g:title>SKU olmayan ürün</g:title>
    </item>
  </channel>
</rss>`

const dialectFeed = `<?xml version="1.0" encoding="UTF-8"?>
<Urunler>
  <Urun>
    <StokKodu>B-100</StokKodu>
    <UrunAdi>Yumuşatıcı 1,5 LT</UrunAdi>
    <Marka>Softy</Marka>
    <Barkod>8690000000001</Barkod>
    <KategoriYolu>Temizlik &gt; Yumuşatıcı</KategoriYolu>
    <AlisFiyati>1.250,75</AlisFiyati>
    <Stok>40</Stok>
    <Resimler>
      <Resim>https://cdn.example.com/a.jpg</Resim>
      <Resim>https://cdn.example.com/b.jpg</Resim>
    </Resimler>
    <Hacim>1,5 LT</Hacim>
  </Urun>
  <Urun>
    <StokKodu>B-101</StokKodu>
    <UrunAdi>Sıvı Sabun</UrunAdi>
    <AlisFiyati>bozuk</AlisFiyati>
    <Stok>-5</Stok>
  </Urun>
</Urunler>`

func TestDecodeRSSFeed(t *testing.T) {
	t.Parallel()

	items, skipped, err := feed.NewDecoder().Decode(context.Background(), strings.NewReader(rssFeed))

	require.NoError(t, err)
	assert.Equal(t, 1, skipped)
	require.Len(t, items, 1)

	item := items[0]
	assert.Equal(t, "SKU-1", item.SKU)
	assert.Equal(t, "Çamaşır Deterjanı 4 KG", item.Name)
	assert.Equal(t, "Konsantre deterjan", item.Description)
	assert.Equal(t, "Bingo", item.Brand)
	assert.Equal(t, "149.9", item.BuyingPrice.String())
	assert.Equal(t, 12, item.Stock)
	assert.Equal(t, []string{"https://cdn.example.com/1.jpg"}, item.ImageURLs)
}

func TestDecodeSupplierDialect(t *testing.T) {
	t.Parallel()

	items, skipped, err := feed.NewDecoder().Decode(context.Background(), strings.NewReader(dialectFeed))

	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, items, 2)

	first := items[0]
	assert.Equal(t, "B-100", first.SKU)
	assert.Equal(t, "Yumuşatıcı 1,5 LT", first.Name)
	assert.Equal(t, "Softy", first.Brand)
	assert.Equal(t, "8690000000001", first.Barcode)
	assert.Equal(t, "Temizlik > Yumuşatıcı", first.CategoryPath)
	assert.Equal(t, "1250.75", first.BuyingPrice.String())
	assert.Equal(t, 40, first.Stock)
	assert.Equal(t, []string{"https://cdn.example.com/a.jpg", "https://cdn.example.com/b.jpg"}, first.ImageURLs)
	// Unrecognized scalar fields stay addressable for attribute mappings.
	assert.Equal(t, "1,5 LT", first.Raw["Hacim"])

	// Unparseable price and negative stock fall back to safe defaults.
	second := items[1]
	assert.True(t, second.BuyingPrice.IsZero())
	assert.Zero(t, second.Stock)
}

func TestDecodeMultipleListsDeterministic(t *testing.T) {
	t.Parallel()

	// Two list-valued siblings; the decoder must settle on the same
	// one every run, not whichever a map walk happens to reach first.
	doc := `<Katalog>
  <Urun><StokKodu>M-1</StokKodu><UrunAdi>Bir</UrunAdi></Urun>
  <Urun><StokKodu>M-2</StokKodu><UrunAdi>İki</UrunAdi></Urun>
  <Yorum>harika</Yorum>
  <Yorum>fena değil</Yorum>
</Katalog>`

	for i := 0; i < 20; i++ {
		items, skipped, err := feed.NewDecoder().Decode(context.Background(), strings.NewReader(doc))

		require.NoError(t, err)
		assert.Zero(t, skipped)
		require.Len(t, items, 2)
		assert.Equal(t, "M-1", items[0].SKU)
		assert.Equal(t, "M-2", items[1].SKU)
	}
}

func TestDecodeNoProductList(t *testing.T) {
	t.Parallel()

	_, _, err := feed.NewDecoder().Decode(context.Background(), strings.NewReader("<root><meta>x</meta></root>"))

	assert.ErrorIs(t, err, feed.ErrNoProductList)
}

func TestDecodeCustomAliases(t *testing.T) {
	t.Parallel()

	aliases := feed.DefaultAliases()
	aliases.SKU = append([]string{"OzelKod"}, aliases.SKU...)

	doc := `<Liste><Kayit><OzelKod>X1</OzelKod><Baslik>Ürün</Baslik></Kayit><Kayit><OzelKod>X2</OzelKod></Kayit></Liste>`

	items, skipped, err := feed.NewDecoder(feed.WithAliases(aliases)).
		Decode(context.Background(), strings.NewReader(doc))

	require.NoError(t, err)
	assert.Zero(t, skipped)
	require.Len(t, items, 2)
	assert.Equal(t, "X1", items[0].SKU)
	assert.Equal(t, "Ürün", items[0].Name)
}
