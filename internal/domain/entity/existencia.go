package entity

// Número de zonas regionales de almacenes. Las ubicaciones se clasifican zona1..zona4.
const NumZonas = 4

// Existencia es una fila cruda de inventario: cantidad de un producto en un almacén
// de una zona regional. La agregación por producto/zona la hace el caso de uso.
type Existencia struct {
	ProductoID  string
	ProductoNom string
	WarehouseID string
	Warehouse   string
	Zona        int // 1..4; 0 = ubicación sin zona asignada
	Cantidad    int
}
