// Package school declares the entity modules of the console: students,
// users, events, behavior records and courses. Each module is a
// console.Definition binding a record type to its REST resource, search
// fields, category field and table columns.
package school
