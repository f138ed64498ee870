// seed_catalogo genera un script SQL para poblar el catálogo de productos a
// partir de la lista de precios XML que entrega el distribuidor (latin-1).
//
// Uso: go run ./cmd/seed_catalogo [ruta/catalogo.xml]
// Por defecto busca catalogo.xml en el directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_catalogo.sql
//
// Formato esperado del XML:
//
//	<catalogo proveedor="...">
//	  <producto codigo="..." nombre="..." categoria="..." unidad="pieza"
//	            piezas="50" costo="123.45" iva="si" caducidad="2027-01-31"/>
//	  ...
//	</catalogo>
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

type productoCatalogo struct {
	codigo    string
	nombre    string
	categoria string
	unidad    string
	piezas    int64
	costo     string
	aplicaIVA bool
	caducidad string
}

func main() {
	xmlPath := "catalogo.xml"
	if len(os.Args) > 1 {
		xmlPath = os.Args[1]
	}

	doc := etree.NewDocument()
	// Las listas del distribuidor vienen en ISO-8859-1
	doc.ReadSettings.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		if strings.EqualFold(charset, "ISO-8859-1") || strings.EqualFold(charset, "ISO8859-1") {
			return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
		}
		return input, nil
	}
	if err := doc.ReadFromFile(xmlPath); err != nil {
		fmt.Fprintf(os.Stderr, "Leer XML: %v\n", err)
		os.Exit(1)
	}

	root := doc.Root()
	if root == nil || root.Tag != "catalogo" {
		fmt.Fprintln(os.Stderr, "XML inválido: se esperaba elemento raíz <catalogo>")
		os.Exit(1)
	}
	proveedor := strings.TrimSpace(root.SelectAttrValue("proveedor", ""))

	var productos []productoCatalogo
	for _, el := range root.SelectElements("producto") {
		p := productoCatalogo{
			codigo:    strings.TrimSpace(el.SelectAttrValue("codigo", "")),
			nombre:    strings.TrimSpace(el.SelectAttrValue("nombre", "")),
			categoria: strings.TrimSpace(el.SelectAttrValue("categoria", "")),
			unidad:    strings.TrimSpace(el.SelectAttrValue("unidad", "pieza")),
			costo:     strings.TrimSpace(el.SelectAttrValue("costo", "0")),
			aplicaIVA: strings.EqualFold(el.SelectAttrValue("iva", ""), "si"),
			caducidad: strings.TrimSpace(el.SelectAttrValue("caducidad", "")),
		}
		if p.codigo == "" || p.nombre == "" {
			continue
		}
		if n, err := strconv.ParseInt(el.SelectAttrValue("piezas", "0"), 10, 64); err == nil {
			p.piezas = n
		}
		if _, err := strconv.ParseFloat(p.costo, 64); err != nil {
			p.costo = "0"
		}
		productos = append(productos, p)
	}
	if len(productos) == 0 {
		fmt.Fprintln(os.Stderr, "el catálogo no contiene productos válidos")
		os.Exit(1)
	}

	moduleRoot := findModuleRoot()
	outPath := filepath.Join(moduleRoot, "internal", "infrastructure", "postgres", "migrations", "002_seed_catalogo.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	fmt.Fprintf(out, "-- Catálogo inicial de productos\n-- Generado desde %s\n\n", filepath.Base(xmlPath))
	for _, p := range productos {
		caducidad := "NULL"
		if p.caducidad != "" {
			caducidad = "'" + escapeSQL(p.caducidad) + "'"
		}
		// Precio sugerido: costo * (1 + margen por defecto), + IVA cuando aplica
		factor := "1.35"
		if p.aplicaIVA {
			factor = "1.35 * 1.16"
		}
		fmt.Fprintf(out, "INSERT INTO productos (id, nombre, codigo, categoria, proveedor, unidad, piezas_por_unidad, costo, aplica_iva, precio, caducidad)\n")
		fmt.Fprintf(out, "VALUES (gen_random_uuid(), '%s', '%s', '%s', '%s', '%s', %d, %s, %t, round(%s * %s, 2), %s)\n",
			escapeSQL(p.nombre), escapeSQL(p.codigo), escapeSQL(p.categoria),
			escapeSQL(proveedor), escapeSQL(p.unidad), p.piezas, p.costo, p.aplicaIVA, p.costo, factor, caducidad)
		out.WriteString("ON CONFLICT (codigo) DO UPDATE SET costo = EXCLUDED.costo, precio = EXCLUDED.precio;\n")
	}

	fmt.Printf("Generado %s: %d productos\n", outPath, len(productos))
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
