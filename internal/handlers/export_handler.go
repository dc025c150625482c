package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"storefront-service/internal/catalog"
	"storefront-service/internal/models"
)

type ExportHandler struct {
	catalog *catalog.Catalog
	log     *logrus.Logger
}

func NewExportHandler(cat *catalog.Catalog, log *logrus.Logger) *ExportHandler {
	return &ExportHandler{catalog: cat, log: log}
}

var exportColumns = []string{
	"ID", "Name", "Category", "Brand", "Price", "Old Price",
	"Rating", "Reviews", "In Stock", "Stock Count", "Badges", "Warranty",
}

// ExportCatalog handles GET /api/v1/export/catalog
// Streams the full catalog as an XLSX workbook.
func (h *ExportHandler) ExportCatalog(c *gin.Context) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Catalog"
	f.SetSheetName("Sheet1", sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, name := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, name)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)

		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 18)
	}

	for row, p := range h.catalog.Products() {
		values := productRow(p)
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheetName, cell, v)
		}
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=techzone_catalog.xlsx")

	if err := f.Write(c.Writer); err != nil {
		h.log.WithError(err).Error("Failed to write catalog export")
		c.Status(http.StatusInternalServerError)
	}
}

func productRow(p models.Product) []interface{} {
	oldPrice := ""
	if p.OldPrice != nil {
		oldPrice = fmt.Sprintf("%.0f", *p.OldPrice)
	}
	badges := make([]string, 0, len(p.Badges))
	for _, b := range p.Badges {
		badges = append(badges, string(b))
	}

	return []interface{}{
		p.ID, p.Name, p.Category, p.Brand, p.Price, oldPrice,
		p.Rating, p.ReviewsCount, p.InStock, p.StockCount,
		strings.Join(badges, ", "), p.Warranty,
	}
}
