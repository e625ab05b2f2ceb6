// Package storage guarda las imágenes de producto en disco local.
// El dominio solo conoce el nombre de archivo devuelto; el directorio
// base es configuración de la aplicación.
package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ImageStore almacenamiento local de imágenes (base64 -> archivo).
type ImageStore struct {
	dir string
}

// NewImageStore construye el store sobre el directorio dado.
func NewImageStore(dir string) *ImageStore {
	return &ImageStore{dir: dir}
}

// Save decodifica la imagen base64 (con o sin prefijo data-URL) y la escribe
// con nombre aleatorio. Devuelve el nombre de archivo.
func (s *ImageStore) Save(imageBase64 string) (string, error) {
	if imageBase64 == "" {
		return "", fmt.Errorf("imagen vacía")
	}
	// Aceptar "data:image/png;base64,...." quedándonos con el payload.
	payload := imageBase64
	if i := strings.LastIndex(imageBase64, ","); i >= 0 {
		payload = imageBase64[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", fmt.Errorf("decodificar imagen: %w", err)
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de imágenes: %w", err)
	}
	filename := strings.ReplaceAll(uuid.New().String(), "-", "") + ".png"
	if err := os.WriteFile(filepath.Join(s.dir, filename), data, 0o644); err != nil {
		return "", fmt.Errorf("escribir imagen: %w", err)
	}
	return filename, nil
}

// Delete elimina la imagen si existe; un archivo ausente no es error.
func (s *ImageStore) Delete(filename string) error {
	if filename == "" {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filename))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("eliminar imagen: %w", err)
	}
	return nil
}
