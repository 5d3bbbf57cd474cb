package handlers

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// respuesta guiona el resultado de una llamada a la base de datos.
// Las llamadas se consumen en el orden en que el handler las hace.
type respuesta struct {
	filas [][]any
	tag   string
	err   error
}

type llamada struct {
	sql  string
	args []any
}

// fakeDB implementa database.Querier y pgx.Tx sobre una cola de respuestas.
type fakeDB struct {
	respuestas []respuesta
	llamadas   []llamada

	commits   int
	rollbacks int
	beginErr  error
}

func (f *fakeDB) siguiente(sql string, args []any) respuesta {
	f.llamadas = append(f.llamadas, llamada{sql: sql, args: args})
	if len(f.respuestas) == 0 {
		return respuesta{err: fmt.Errorf("llamada inesperada: %s", sql)}
	}
	r := f.respuestas[0]
	f.respuestas = f.respuestas[1:]
	return r
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	r := f.siguiente(sql, args)
	if r.err != nil {
		return nil, r.err
	}
	return &fakeRows{filas: r.filas}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	r := f.siguiente(sql, args)
	return &fakeRow{r: r}
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	r := f.siguiente(sql, args)
	if r.err != nil {
		return pgconn.CommandTag{}, r.err
	}
	return pgconn.NewCommandTag(r.tag), nil
}

func (f *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	return &fakeTx{db: f}, nil
}

// sqlEjecutados devuelve los SQL en orden para inspección de las pruebas.
func (f *fakeDB) sqlEjecutados() []string {
	var sqls []string
	for _, l := range f.llamadas {
		sqls = append(sqls, l.sql)
	}
	return sqls
}

type fakeRow struct {
	r respuesta
}

func (fr *fakeRow) Scan(dest ...any) error {
	if fr.r.err != nil {
		return fr.r.err
	}
	if len(fr.r.filas) == 0 {
		return pgx.ErrNoRows
	}
	return asignar(dest, fr.r.filas[0])
}

type fakeRows struct {
	filas [][]any
	pos   int
	err   error
}

func (fr *fakeRows) Close()                                       {}
func (fr *fakeRows) Err() error                                   { return fr.err }
func (fr *fakeRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (fr *fakeRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (fr *fakeRows) RawValues() [][]byte                          { return nil }
func (fr *fakeRows) Conn() *pgx.Conn                              { return nil }

func (fr *fakeRows) Next() bool {
	return fr.pos < len(fr.filas)
}

func (fr *fakeRows) Scan(dest ...any) error {
	if fr.pos >= len(fr.filas) {
		return pgx.ErrNoRows
	}
	fila := fr.filas[fr.pos]
	fr.pos++
	return asignar(dest, fila)
}

func (fr *fakeRows) Values() ([]any, error) {
	if fr.pos == 0 || fr.pos > len(fr.filas) {
		return nil, pgx.ErrNoRows
	}
	return fr.filas[fr.pos-1], nil
}

type fakeTx struct {
	db *fakeDB
}

func (t *fakeTx) Begin(context.Context) (pgx.Tx, error) { return t, nil }

func (t *fakeTx) Commit(context.Context) error {
	t.db.commits++
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	if t.db.commits > 0 {
		return pgx.ErrTxClosed
	}
	t.db.rollbacks++
	return nil
}

func (t *fakeTx) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, fmt.Errorf("no implementado")
}

func (t *fakeTx) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (t *fakeTx) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }

func (t *fakeTx) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, fmt.Errorf("no implementado")
}

func (t *fakeTx) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return t.db.Exec(ctx, sql, args...)
}

func (t *fakeTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return t.db.Query(ctx, sql, args...)
}

func (t *fakeTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return t.db.QueryRow(ctx, sql, args...)
}

func (t *fakeTx) Conn() *pgx.Conn { return nil }

// asignar copia cada valor guionado al destino del Scan.
func asignar(dest []any, fila []any) error {
	if len(dest) != len(fila) {
		return fmt.Errorf("scan espera %d columnas, la fila tiene %d", len(dest), len(fila))
	}
	for i, valor := range fila {
		if valor == nil {
			continue
		}
		dv := reflect.ValueOf(dest[i])
		if dv.Kind() != reflect.Pointer {
			return fmt.Errorf("destino %d no es puntero", i)
		}
		sv := reflect.ValueOf(valor)
		if !sv.Type().ConvertibleTo(dv.Elem().Type()) {
			return fmt.Errorf("no se puede asignar %T a %s", valor, dv.Elem().Type())
		}
		dv.Elem().Set(sv.Convert(dv.Elem().Type()))
	}
	return nil
}
