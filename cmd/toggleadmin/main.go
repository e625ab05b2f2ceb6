// toggleadmin invierte el flag de administrador de un usuario por email.
//
// Uso: go run ./cmd/toggleadmin correo@dominio.com
// Usa la misma configuración de base de datos que la API (variables de entorno).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/pedidos-api/internal/infrastructure/postgres"
	"github.com/jhoicas/pedidos-api/pkg/config"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Uso: toggleadmin <email>")
		os.Exit(1)
	}
	email := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	user, err := userRepo.GetByEmail(email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Buscar usuario: %v\n", err)
		os.Exit(1)
	}
	if user == nil {
		fmt.Fprintf(os.Stderr, "Usuario %s no encontrado\n", email)
		os.Exit(1)
	}

	user.IsAdmin = !user.IsAdmin
	user.UpdatedAt = time.Now().UTC()
	if err := userRepo.Update(user); err != nil {
		fmt.Fprintf(os.Stderr, "Actualizar usuario: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Usuario %s: is_admin = %t\n", email, user.IsAdmin)
}
