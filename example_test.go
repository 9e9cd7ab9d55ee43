package dblink_test

import (
	"fmt"

	"github.com/nitinet/dblink-core"
	"github.com/nitinet/dblink-core/mssql"
	"github.com/nitinet/dblink-core/postgres"
)

func ExampleSelect() {
	result := dblink.Select(dblink.T("users", "u")).
		Columns(dblink.C("u", "id"), dblink.C("u", "name")).
		Where(dblink.Eq(dblink.C("u", "active"), true)).
		OrderBy(dblink.Asc(dblink.C("u", "name"))).
		Limit(10).
		MustRender(postgres.New())

	fmt.Println(result.SQL)
	fmt.Println(result.Args)

	// Output:
	// select u.id, u.name from users as u where u.active = $1 order by u.name asc limit 10
	// [true]
}

func ExampleInsert() {
	result := dblink.Insert(dblink.T("users")).
		Columns(dblink.Cols("name", "email")...).
		Values("alice", "alice@example.com").
		Returning(dblink.C("", "id")).
		MustRender(postgres.New())

	fmt.Println(result.SQL)
	fmt.Println(result.Args)

	// Output:
	// insert into users (name, email) values ($1, $2) returning id
	// [alice alice@example.com]
}

func ExampleUpdate() {
	result := dblink.Update(dblink.T("users")).
		Set(dblink.C("", "email"), "bob@example.com").
		Where(dblink.Eq(dblink.C("", "id"), 42)).
		MustRender(mssql.New())

	fmt.Println(result.SQL)

	// Output:
	// update users set email = @p1 where id = @p2
}

func ExampleRenderAll() {
	archive := dblink.Insert(dblink.T("archive")).
		Columns(dblink.Cols("user_id")...).
		Values(7).
		MustBuild()
	remove := dblink.Delete(dblink.T("users")).
		Where(dblink.Eq(dblink.C("", "id"), 7)).
		MustBuild()

	result, err := dblink.RenderAll(postgres.New(), archive, remove)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(result.SQL)

	// Output:
	// insert into archive (user_id) values ($1); delete from users where id = $2;
}
