package analyticsControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/HanzChrisrome/soiltrack-commerce-sub000/models"
)

// GET /api/admin/analytics/sales-export
func ExportSalesToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("User").Preload("Items").
			Order("created_at DESC").Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Sales")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"OrderRef", "UserEmail", "PaymentMethod", "PaymentStatus",
			"ShippingStatus", "Items", "TotalPesos", "PointsSpent", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, o := range orders {
			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderRef)
			row.AddCell().SetValue(o.User.Email)
			row.AddCell().SetValue(string(o.PaymentMethod))
			row.AddCell().SetValue(string(o.PaymentStatus))
			row.AddCell().SetValue(string(o.ShippingStatus))
			row.AddCell().SetValue(len(o.Items))
			row.AddCell().SetValue(float64(o.TotalAmount) / 100.0)
			row.AddCell().SetValue(o.PointsSpent)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=sales.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
