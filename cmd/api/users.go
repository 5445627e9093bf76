package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/investify-receiving/internal/application/service"
	"github.com/sangkips/investify-receiving/internal/domain/enum"
	"github.com/sangkips/investify-receiving/internal/infrastructure/repository"
	"github.com/sangkips/investify-receiving/pkg/utils"
	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage desk operators",
}

var newUser struct {
	name      string
	email     string
	password  string
	role      string
	locations []string
}

var createUserCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an operator with a role and access to one or more locations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		locationIDs := make([]uuid.UUID, 0, len(newUser.locations))
		for _, raw := range newUser.locations {
			id, err := utils.ParseUUID(raw)
			if err != nil {
				return fmt.Errorf("invalid location id %q", raw)
			}
			locationIDs = append(locationIDs, id)
		}

		a, err := bootstrap()
		if err != nil {
			return err
		}
		defer a.close()

		users := service.NewUserService(
			repository.NewUserRepository(a.db),
			repository.NewRoleRepository(a.db),
			repository.NewLocationRepository(a.db),
		)

		firstName, lastName, _ := strings.Cut(strings.TrimSpace(newUser.name), " ")
		user, err := users.CreateOperator(cmd.Context(), &service.CreateOperatorInput{
			FirstName:   firstName,
			LastName:    lastName,
			Email:       newUser.email,
			Password:    newUser.password,
			Role:        newUser.role,
			LocationIDs: locationIDs,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created %s (%s) as %s\n", user.Email, user.ID, newUser.role)
		return nil
	},
}

func init() {
	flags := createUserCmd.Flags()
	flags.StringVar(&newUser.name, "name", "", "Full name")
	flags.StringVar(&newUser.email, "email", "", "Sign-in email")
	flags.StringVar(&newUser.password, "password", "", "Initial password, at least 8 characters")
	flags.StringVar(&newUser.role, "role", enum.RoleClerk, "Role name")
	flags.StringSliceVar(&newUser.locations, "location", nil, "Location ID, repeatable")
	_ = createUserCmd.MarkFlagRequired("email")
	_ = createUserCmd.MarkFlagRequired("password")
	_ = createUserCmd.MarkFlagRequired("location")

	usersCmd.AddCommand(createUserCmd)
}
