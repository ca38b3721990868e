package entity

// StockSummary es la vista derivada del inventario completo. Se recalcula en
// cada lectura a partir de los materiales; nunca se almacena.
type StockSummary struct {
	TotalStock     int64
	TotalReserved  int64
	TotalAvailable int64
}

// Summarize calcula el resumen de stock sobre el conjunto actual de materiales.
func Summarize(materials []*Material) StockSummary {
	var s StockSummary
	for _, m := range materials {
		s.TotalStock += m.Stock
		s.TotalReserved += m.Reserved
		s.TotalAvailable += m.Available()
	}
	return s
}
