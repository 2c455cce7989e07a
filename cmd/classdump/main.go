// Command classdump is a thin front end over the classfile package, built
// for inspecting .class files from the command line.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gojvm/classfile/classfile"
	"github.com/gojvm/classfile/classfile/opcodes"
	"github.com/gojvm/classfile/visitorutil"
)

var (
	wantFields  bool
	wantMethods bool
	wantCode    bool
	expand      bool
)

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

func dumpClass(path string) {
	mapped, reader, err := classfile.OpenFile(path, classfile.DefaultConfig())
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
		return
	}
	defer mapped.Close()

	w := tabwriter.NewWriter(os.Stdout, 1, 1, 2, ' ', 0)
	fmt.Fprintf(w, "\n------[ %s ]------\n\n", path)

	visitor := visitorutil.ClassVisitor{
		OnVisit: func(version, access int, name, signature, superName string, interfaces []string) {
			fmt.Fprintf(w, "Name:\t %s\n", name)
			fmt.Fprintf(w, "Super:\t %s\n", superName)
			fmt.Fprintf(w, "Version:\t 0x%x\n", version)
			fmt.Fprintf(w, "Access:\t 0x%x\n", access)
			if len(interfaces) > 0 {
				fmt.Fprintf(w, "Interfaces:\t %s\n", strings.Join(interfaces, ", "))
			}
			if signature != "" {
				fmt.Fprintf(w, "Signature:\t %s\n", signature)
			}
		},
		OnVisitField: func(access int, name, descriptor, signature string, value interface{}) classfile.FieldVisitor {
			if wantFields {
				fmt.Fprintf(w, "field\t 0x%x\t %s\t %s\n", access, name, descriptor)
			}
			return nil
		},
		OnVisitMethod: func(access int, name, descriptor, signature string, exceptions []string) classfile.MethodVisitor {
			if !wantMethods {
				return nil
			}
			fmt.Fprintf(w, "method\t 0x%x\t %s\t %s\n", access, name, descriptor)
			if !wantCode {
				return nil
			}
			return visitorutil.MethodVisitor{
				OnVisitInsn: func(opcode int) {
					fmt.Fprintf(w, "\t\t %s\n", mnemonic(opcode))
				},
				OnVisitIntInsn: func(opcode, operand int) {
					fmt.Fprintf(w, "\t\t %s %d\n", mnemonic(opcode), operand)
				},
				OnVisitVarInsn: func(opcode, varIndex int) {
					fmt.Fprintf(w, "\t\t %s %d\n", mnemonic(opcode), varIndex)
				},
				OnVisitTypeInsn: func(opcode int, typeDescriptor string) {
					fmt.Fprintf(w, "\t\t %s %s\n", mnemonic(opcode), typeDescriptor)
				},
				OnVisitFieldInsn: func(opcode int, owner, name, descriptor string) {
					fmt.Fprintf(w, "\t\t %s %s.%s:%s\n", mnemonic(opcode), owner, name, descriptor)
				},
				OnVisitMethodInsn: func(opcode int, owner, name, descriptor string, isInterface bool) {
					fmt.Fprintf(w, "\t\t %s %s.%s%s\n", mnemonic(opcode), owner, name, descriptor)
				},
				OnVisitLdcInsn: func(value interface{}) {
					fmt.Fprintf(w, "\t\t LDC %v\n", value)
				},
				OnVisitJumpInsn: func(opcode int, label *classfile.Label) {
					fmt.Fprintf(w, "\t\t %s L%p\n", mnemonic(opcode), label)
				},
				OnVisitMaxs: func(maxStack, maxLocals int) {
					fmt.Fprintf(w, "\t\t maxStack=%d maxLocals=%d\n", maxStack, maxLocals)
				},
			}
		},
	}

	parsingOptions := 0
	if expand {
		parsingOptions |= classfile.ExpandFrames
	}
	if err := reader.Accept(visitor, parsingOptions); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
	}
	w.Flush()
}

func mnemonic(opcode int) string {
	if name, ok := opcodeNames[opcode]; ok {
		return name
	}
	return fmt.Sprintf("op_%d", opcode)
}

func run(cmd *cobra.Command, args []string) {
	path := args[0]
	if !isDirectory(path) {
		dumpClass(path)
		return
	}
	filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() && strings.HasSuffix(p, ".class") {
			dumpClass(p)
		}
		return nil
	})
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "classdump",
		Short: "A Java ClassFile parser",
		Long:  "Inspects the structure of compiled Java .class files",
	}

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("classdump 0.1.0")
		},
	}

	var dumpCmd = &cobra.Command{
		Use:   "dump <path>",
		Short: "Dumps a .class file or every .class file under a directory",
		Args:  cobra.ExactArgs(1),
		Run:   run,
	}
	dumpCmd.Flags().BoolVarP(&wantFields, "fields", "f", true, "print field declarations")
	dumpCmd.Flags().BoolVarP(&wantMethods, "methods", "m", true, "print method declarations")
	dumpCmd.Flags().BoolVarP(&wantCode, "code", "c", false, "disassemble method bodies")
	dumpCmd.Flags().BoolVar(&expand, "expand-frames", false, "expand compressed stack map frames")

	rootCmd.AddCommand(versionCmd, dumpCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

var opcodeNames = map[int]string{
	opcodes.NOP: "nop", opcodes.ACONST_NULL: "aconst_null",
	opcodes.ICONST_M1: "iconst_m1", opcodes.ICONST_0: "iconst_0", opcodes.ICONST_1: "iconst_1",
	opcodes.ICONST_2: "iconst_2", opcodes.ICONST_3: "iconst_3", opcodes.ICONST_4: "iconst_4", opcodes.ICONST_5: "iconst_5",
	opcodes.BIPUSH: "bipush", opcodes.SIPUSH: "sipush", opcodes.LDC: "ldc",
	opcodes.ILOAD: "iload", opcodes.LLOAD: "lload", opcodes.FLOAD: "fload", opcodes.DLOAD: "dload", opcodes.ALOAD: "aload",
	opcodes.ISTORE: "istore", opcodes.LSTORE: "lstore", opcodes.FSTORE: "fstore", opcodes.DSTORE: "dstore", opcodes.ASTORE: "astore",
	opcodes.POP: "pop", opcodes.DUP: "dup", opcodes.SWAP: "swap",
	opcodes.IADD: "iadd", opcodes.LADD: "ladd", opcodes.FADD: "fadd", opcodes.DADD: "dadd",
	opcodes.RETURN: "return", opcodes.IRETURN: "ireturn", opcodes.ARETURN: "areturn",
	opcodes.GETSTATIC: "getstatic", opcodes.PUTSTATIC: "putstatic", opcodes.GETFIELD: "getfield", opcodes.PUTFIELD: "putfield",
	opcodes.INVOKEVIRTUAL: "invokevirtual", opcodes.INVOKESPECIAL: "invokespecial",
	opcodes.INVOKESTATIC: "invokestatic", opcodes.INVOKEINTERFACE: "invokeinterface",
	opcodes.NEW: "new", opcodes.ANEWARRAY: "anewarray", opcodes.CHECKCAST: "checkcast", opcodes.INSTANCEOF: "instanceof",
	opcodes.GOTO: "goto", opcodes.IFEQ: "ifeq", opcodes.IFNE: "ifne",
	opcodes.ATHROW: "athrow",
}
